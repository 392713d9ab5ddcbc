// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package documents stores identity documents uploaded at registration.

Uploads are kept as plain files under one directory. Client filenames are
passed through SanitizeFilename before use, so a stored reference is always
a flat name inside that directory:

	docs, err := documents.NewDir(cfg.UploadDir)
	ref, err := docs.Save(ctx, header.Filename, file)
*/
package documents
