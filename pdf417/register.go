package pdf417

import pdf417go "github.com/ericlevine/pdf417go"

func init() {
	pdf417go.RegisterReader(pdf417go.FormatPDF417, func(*pdf417go.DecodeOptions) pdf417go.Reader {
		return NewReader()
	})
}
