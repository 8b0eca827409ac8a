// Where: internal/infra/optionfile/location.go
// What: Option file locations and export path templating.
// Why: Option lists may live on disk or in S3, and export names often embed the field key or date.
package optionfile

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const s3Scheme = "s3"

// Location is a local path or an s3://bucket/key object.
type Location struct {
	Raw    string
	Bucket string
	Key    string
}

// IsS3 reports whether the location points to an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	return l.Raw
}

// ParseLocation splits raw into a local path or bucket/key pair.
func ParseLocation(raw string) (Location, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Location{}, fmt.Errorf("location is required")
	}
	if !strings.HasPrefix(trimmed, s3Scheme+"://") {
		return Location{Raw: trimmed}, nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return Location{}, fmt.Errorf("parse s3 location %q: %w", trimmed, err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if parsed.Host == "" || key == "" {
		return Location{}, fmt.Errorf("s3 location %q must be s3://bucket/key", trimmed)
	}
	return Location{Raw: trimmed, Bucket: parsed.Host, Key: key}, nil
}

// PathData is exposed to export path templates.
type PathData struct {
	Field   string
	Backend string
	Profile string
}

// RenderPath expands a text/template export path with sprig functions.
// Example: "exports/{{ .Field }}-{{ now | date \"20060102\" }}.csv".
func RenderPath(pattern string, data PathData) (string, error) {
	if !strings.Contains(pattern, "{{") {
		return pattern, nil
	}
	tmpl, err := template.New("path").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("parse path template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render path template: %w", err)
	}
	rendered := strings.TrimSpace(buf.String())
	if rendered == "" {
		return "", fmt.Errorf("path template %q rendered empty", pattern)
	}
	return rendered, nil
}
