package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	errors "github.com/barangay/docucheck/internal"
	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/document"
)

// QRRenderer renders a hash code as a PNG for the certificate stamp.
type QRRenderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

// fieldAliases maps each value we can print to the template field names
// that may carry it, in preference order. Fields absent from a template
// are skipped, never fatal.
var fieldAliases = map[string][]string{
	"name":        {"applicant_name", "name", "full_name"},
	"address":     {"applicant_address", "address"},
	"purpose":     {"purpose"},
	"age":         {"age"},
	"issued_date": {"issued_date", "date", "issued_on"},
	"signature":   {"signature_name", "applicant_signature"},
	"gender":      {"gender"},
	"contact":     {"contact"},
	"birthdate":   {"birthdate"},
	"certificate": {"textarea_certificate"},
}

// qrStampDesc positions the QR at the lower-left corner, clear of the
// certificate body.
const qrStampDesc = "pos:bl, off:20 20, scale:.1 abs, rot:0"

// Assembler fills, stamps and flattens certificate templates. Output is
// all or nothing: a failed assembly returns no bytes.
type Assembler struct {
	templateDir string
	qr          QRRenderer
	logger      *slog.Logger
}

func NewAssembler(templateDir string, qr QRRenderer, logger *slog.Logger) *Assembler {
	return &Assembler{
		templateDir: templateDir,
		qr:          qr,
		logger:      logger,
	}
}

// Assemble produces the final certificate PDF for an issued record.
func (a *Assembler) Assemble(ctx context.Context, rec *document.Record) ([]byte, error) {
	template, err := a.loadTemplate(rec.Type)
	if err != nil {
		return nil, err
	}

	available, err := a.templateFields(template)
	if err != nil {
		return nil, errors.NewTemplateError("Certificate template could not be read", err)
	}

	filled, err := a.fillFields(template, rec, available)
	if err != nil {
		return nil, errors.NewTemplateError("Certificate could not be generated", err)
	}

	stamped := a.stampQR(ctx, filled, rec.HashCode)

	flattened, err := a.flatten(stamped)
	if err != nil {
		return nil, errors.NewTemplateError("Certificate could not be generated", err)
	}

	a.logger.Info("certificate assembled",
		"document_type", rec.Type,
		"document_id", rec.ID,
		"bytes", len(flattened))

	return flattened, nil
}

func (a *Assembler) loadTemplate(t datamodel.Type) ([]byte, error) {
	path := filepath.Join(a.templateDir, fmt.Sprintf("%s_template.pdf", t))
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Error("certificate template missing", "path", path, "error", err)
		return nil, errors.NewTemplateError("Certificate template is unavailable, please contact the barangay office", err)
	}
	return data, nil
}

// templateFields exports the template's form and returns the set of
// text field names it defines.
func (a *Assembler) templateFields(template []byte) (map[string]bool, error) {
	var out bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(template), &out, "", nil); err != nil {
		return nil, fmt.Errorf("export form: %w", err)
	}

	var export struct {
		Forms []struct {
			TextField []struct {
				Name string `json:"name"`
			} `json:"textfield"`
			TextArea []struct {
				Name string `json:"name"`
			} `json:"textarea"`
		} `json:"forms"`
	}
	if err := json.Unmarshal(out.Bytes(), &export); err != nil {
		return nil, fmt.Errorf("decode form export: %w", err)
	}

	fields := make(map[string]bool)
	for _, form := range export.Forms {
		for _, f := range form.TextField {
			fields[f.Name] = true
		}
		for _, f := range form.TextArea {
			fields[f.Name] = true
		}
	}
	return fields, nil
}

func (a *Assembler) fillFields(template []byte, rec *document.Record, available map[string]bool) ([]byte, error) {
	values := map[string]string{
		"name":        rec.FullName(),
		"address":     rec.Address,
		"purpose":     rec.Purpose,
		"age":         fmt.Sprintf("%d", rec.Age),
		"issued_date": rec.IssuedOn.Format(longDateLayout),
		"signature":   rec.FullName(),
		"gender":      rec.Gender,
		"contact":     rec.ContactNumber,
		"birthdate":   rec.Birthdate.Format("2006-01-02"),
		"certificate": CertificateText(rec),
	}
	if rec.Type == datamodel.TypeBusinessPermit {
		values["purpose"] = rec.BusinessNature
	}

	type formField struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	var fill []formField

	for key, value := range values {
		if value == "" {
			continue
		}
		placed := false
		for _, alias := range fieldAliases[key] {
			if available[alias] {
				fill = append(fill, formField{Name: alias, Value: value})
				placed = true
				break
			}
		}
		if !placed {
			a.logger.Warn("no template field for value, skipping",
				"value_key", key,
				"document_type", rec.Type)
		}
	}

	if len(fill) == 0 {
		return template, nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"forms": []map[string]interface{}{{"textfield": fill}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal form fill: %w", err)
	}

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(template), bytes.NewReader(payload), &out, nil); err != nil {
		return nil, fmt.Errorf("fill form: %w", err)
	}
	return out.Bytes(), nil
}

// stampQR adds the verification QR at the bottom-left corner. Render or
// stamp failures degrade to a QR-less certificate.
func (a *Assembler) stampQR(ctx context.Context, doc []byte, hash string) []byte {
	if a.qr == nil || hash == "" {
		return doc
	}

	png, err := a.qr.Render(ctx, hash)
	if err != nil {
		a.logger.Warn("QR render failed, producing certificate without QR", "error", err)
		return doc
	}

	wm, err := api.ImageWatermarkForReader(bytes.NewReader(png), qrStampDesc, true, false, types.POINTS)
	if err != nil {
		a.logger.Warn("QR watermark setup failed, producing certificate without QR", "error", err)
		return doc
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, []string{"1"}, wm, nil); err != nil {
		a.logger.Warn("QR stamp failed, producing certificate without QR", "error", err)
		return doc
	}
	return out.Bytes()
}

// flatten locks every form field so the output is no longer editable.
func (a *Assembler) flatten(doc []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := api.LockFormFields(bytes.NewReader(doc), &out, nil, nil); err != nil {
		return nil, fmt.Errorf("lock form fields: %w", err)
	}
	return out.Bytes(), nil
}
