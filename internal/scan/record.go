package scan

import (
	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/pdf417/decoder"
)

// Record is the JSON form of one decode outcome.
type Record struct {
	Source          string                  `json:"source,omitempty"`
	Text            string                  `json:"text,omitempty"`
	Format          string                  `json:"format,omitempty"`
	ECLevel         string                  `json:"ec_level,omitempty"`
	ErrorsCorrected int                     `json:"errors_corrected"`
	Erasures        int                     `json:"erasures"`
	Points          []pdf417go.ResultPoint  `json:"points,omitempty"`
	Macro           *decoder.ResultMetadata `json:"macro,omitempty"`
	Error           string                  `json:"error,omitempty"`
}

// NewRecord describes a result or, when err is set, the failure.
func NewRecord(source string, result *pdf417go.Result, err error) Record {
	r := Record{Source: source}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Text = result.Text
	r.Format = result.Format.String()
	r.Points = result.Points
	r.ECLevel, _ = result.Metadata[pdf417go.MetadataErrorCorrectionLevel].(string)
	r.ErrorsCorrected, _ = result.Metadata[pdf417go.MetadataErrorsCorrected].(int)
	r.Erasures, _ = result.Metadata[pdf417go.MetadataErasuresCorrected].(int)
	r.Macro, _ = result.Metadata[pdf417go.MetadataPDF417ExtraMetadata].(*decoder.ResultMetadata)
	return r
}

// OK reports whether the record holds a decoded symbol.
func (r Record) OK() bool { return r.Error == "" }
