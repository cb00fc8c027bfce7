package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/yungbote/typeset-backend/internal/types"
)

// keyVersion invalidates every entry when the canonical payload shape
// changes.
const keyVersion = "v1"

// Key derives the content-addressed cache key: canonical JSON of the
// semantic inputs (sorted keys, NFC-normalized, no HTML escaping), hashed
// with SHA-256, prefixed with format, type, and template so operators can
// scan and invalidate by class.
func Key(docType types.DocumentType, template string, data map[string]any, format types.OutputFormat) (string, error) {
	payload := map[string]any{
		"data":     data,
		"template": template,
		"type":     string(docType),
		"format":   string(format),
		"version":  keyVersion,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("canonicalize cache payload: %w", err)
	}
	canonical := norm.NFC.Bytes(bytes.TrimRight(buf.Bytes(), "\n"))
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s:%s:%s", format, docType, template, hex.EncodeToString(sum[:])), nil
}
