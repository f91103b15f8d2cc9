// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// buildArchive writes one named PNG entry per slide in position order.
// Entry headers carry no timestamps so identical inputs produce
// identical archives.
func buildArchive(pages [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for i, page := range pages {
		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:   entryName(i),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("create archive entry %d: %w", i, err)
		}
		if _, err := entry.Write(page); err != nil {
			return nil, fmt.Errorf("write archive entry %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
