package ioingest

import (
	"github.com/gnames/gutendb/internal/iofs"
	"github.com/gnames/gutendb/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// WriteReport saves the batch report as YAML.
func WriteReport(path string, r *catalog.Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return ReportError(path, err)
	}
	if err = iofs.WriteAtomic(path, data); err != nil {
		return ReportError(path, err)
	}
	return nil
}
