package report

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

// WriteDOCX renders the report as a minimal WordprocessingML package: a
// title paragraph followed by a four-column table. The OOXML is written
// directly; the document structure is fixed, so no library is needed.
func WriteDOCX(w io.Writer, title string, rows []Row) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", buildDocumentXML(title, rows)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		if _, err := f.Write([]byte(p.body)); err != nil {
			return err
		}
	}
	return zw.Close()
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func buildDocumentXML(title string, rows []Row) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	// title
	b.WriteString(`<w:p><w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:pPr>`)
	b.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr><w:t>`)
	b.WriteString(escapeXML(title))
	b.WriteString(`</w:t></w:r></w:p>`)

	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/>` +
		`<w:tblBorders><w:top w:val="single"/><w:left w:val="single"/><w:bottom w:val="single"/>` +
		`<w:right w:val="single"/><w:insideH w:val="single"/><w:insideV w:val="single"/></w:tblBorders></w:tblPr>`)
	writeDocxRow(&b, header)
	for _, r := range rows {
		writeDocxRow(&b, []string{r.RegisterNumber, r.Name, r.Date, r.Status})
	}
	b.WriteString(`</w:tbl>`)

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeDocxRow(b *strings.Builder, cells []string) {
	b.WriteString(`<w:tr>`)
	for _, c := range cells {
		b.WriteString(`<w:tc><w:p><w:r><w:t xml:space="preserve">`)
		b.WriteString(escapeXML(c))
		b.WriteString(`</w:t></w:r></w:p></w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
