package loq

import "io"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(*Parser)
}

type (
	reportopt struct {
		d *Diagnoster
	}
	nameopt string
)

// ReportTo tells the parser to report every error it returns to w, rendered
// with the offending source line.
func ReportTo(w io.Writer) ParseOption {
	return reportopt{NewDiagnoster(w)}
}

// ReportWith tells the parser to report every error it returns through d.
func ReportWith(d *Diagnoster) ParseOption {
	return reportopt{d}
}

func (o reportopt) parseOption(p *Parser) {
	p.diag = o.d
}

// SourceName names the source text in diagnostics, e.g. with a file name.
func SourceName(name string) ParseOption {
	return nameopt(name)
}

func (o nameopt) parseOption(p *Parser) {
	p.name = string(o)
}
