package model

// DocumentType classifies a corpus document by its filename.
// The classifier's category order is significant: a filename matching
// several categories resolves to the first one in priority order.
type DocumentType string

const (
	DocTypeRFP        DocumentType = "rfp"
	DocTypeProposal   DocumentType = "proposal"
	DocTypeScoring    DocumentType = "scoring"
	DocTypeContract   DocumentType = "contract"
	DocTypeAward      DocumentType = "award"
	DocTypeAmendment  DocumentType = "amendment"
	DocTypeAttachment DocumentType = "attachment"
	DocTypeProtest    DocumentType = "protest"
	DocTypeOther      DocumentType = "other"
)

// DocumentMetadata is what the classifier infers from a filename plus the
// corpus location. Derived once per document and immutable afterwards.
type DocumentMetadata struct {
	DocumentID   string       `json:"document_id"`
	State        string       `json:"state"`              // jurisdiction directory
	Organization string       `json:"mco_name,omitempty"` // empty if no alias matched
	Year         int          `json:"rfp_year,omitempty"` // 0 if no year found
	DocumentType DocumentType `json:"document_type"`
}

// TextWindow is a bounded, overlapping slice of a document's text used as
// the unit of extraction. Windows are created by the chunker and discarded
// after extraction.
type TextWindow struct {
	DocumentID  string
	WindowIndex int // 0-based, contiguous
	Text        string
	StartOffset int
	EndOffset   int // exclusive
}
