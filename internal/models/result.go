package models

// Document type classifications returned by the scan service.
// "unknown" is the fallback when the service could not classify the text.
const (
	DocTypeInvoice        = "invoice"
	DocTypeLetter         = "letter"
	DocTypeForm           = "form"
	DocTypeLegal          = "legal"
	DocTypeGazette        = "gazette"
	DocTypeManuscript     = "manuscript"
	DocTypeAdministrative = "administrative"
	DocTypeReceipt        = "receipt"
	DocTypeUnknown        = "unknown"
)

// OCRText holds the text recognition portion of a result.
type OCRText struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0 - 1.0
	WordCount  int     `json:"word_count"`
	Engine     string  `json:"engine"`
}

// DocumentMetadata holds entities extracted from the recognized text.
type DocumentMetadata struct {
	Dates        []string `json:"dates,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phone_numbers,omitempty"`
	Amounts      []string `json:"amounts,omitempty"`
}

// IsEmpty reports whether no entity category has any values.
func (m DocumentMetadata) IsEmpty() bool {
	return len(m.Dates) == 0 && len(m.Emails) == 0 &&
		len(m.PhoneNumbers) == 0 && len(m.Amounts) == 0
}

// ProcessingResult is one file's entry in the scan service response.
// OCR and Metadata may be absent in malformed or partial responses;
// readers must go through OCROrEmpty/MetadataOrEmpty instead of
// dereferencing the pointers.
type ProcessingResult struct {
	FileName     string            `json:"file_name"`
	DocumentType string            `json:"document_type,omitempty"`
	ProcessedAt  string            `json:"processed_at,omitempty"`
	OCR          *OCRText          `json:"ocr,omitempty"`
	Metadata     *DocumentMetadata `json:"metadata,omitempty"`
}

// OCROrEmpty returns the OCR block, or a zero block when absent.
func (r ProcessingResult) OCROrEmpty() OCRText {
	if r.OCR == nil {
		return OCRText{}
	}
	return *r.OCR
}

// MetadataOrEmpty returns the metadata block, or a zero block when absent.
func (r ProcessingResult) MetadataOrEmpty() DocumentMetadata {
	if r.Metadata == nil {
		return DocumentMetadata{}
	}
	return *r.Metadata
}

// Type returns the document type tag, defaulting to "unknown".
func (r ProcessingResult) Type() string {
	if r.DocumentType == "" {
		return DocTypeUnknown
	}
	return r.DocumentType
}
