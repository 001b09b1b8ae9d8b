// Package ach reads NACHA formatted transaction files.
//
// A file is a sequence of 94 character records: a file header (1), any
// number of batches (5 header, 6 entries each optionally followed by 7
// addenda, 8 control) and a file control (9). Lines of all nines pad the
// file to a multiple of ten records and are ignored.
package ach

// RecordLength is the fixed width of every NACHA record.
const RecordLength = 94

// Record type codes.
const (
	FileHeaderType   = '1'
	BatchHeaderType  = '5'
	EntryDetailType  = '6'
	AddendaType      = '7'
	BatchControlType = '8'
	FileControlType  = '9'
)

// File is a parsed transaction file.
type File struct {
	// ID is a SHA-256 over the file's records. See PopulateIDs.
	ID      string
	Header  FileHeader
	Batches []*Batch
	Control FileControl
}

// FileHeader is the type 1 record.
type FileHeader struct {
	ImmediateDestination     string
	ImmediateOrigin          string
	FileCreationDate         string
	FileCreationTime         string
	FileIDModifier           string
	ImmediateDestinationName string
	ImmediateOriginName      string
	ReferenceCode            string

	raw string
}

// FileControl is the type 9 record.
type FileControl struct {
	BatchCount        int
	BlockCount        int
	EntryAddendaCount int
	EntryHash         int
	TotalDebit        int64
	TotalCredit       int64

	raw string
}

// Batch groups entries sharing one originator and entry class.
type Batch struct {
	ID      string
	Header  BatchHeader
	Entries []*Entry
	Control BatchControl
}

// BatchHeader is the type 5 record.
type BatchHeader struct {
	ServiceClassCode        int
	CompanyName             string
	CompanyDiscretionary    string
	CompanyIdentification   string
	StandardEntryClassCode  string
	CompanyEntryDescription string
	CompanyDescriptiveDate  string
	EffectiveEntryDate      string
	SettlementDate          string
	OriginatorStatusCode    string
	ODFIIdentification      string
	BatchNumber             int

	raw string
}

// BatchControl is the type 8 record.
type BatchControl struct {
	ServiceClassCode      int
	EntryAddendaCount     int
	EntryHash             int
	TotalDebit            int64
	TotalCredit           int64
	CompanyIdentification string
	ODFIIdentification    string
	BatchNumber           int

	raw string
}

// Entry is a type 6 entry detail record and its addenda.
type Entry struct {
	ID                     string
	TransactionCode        int
	RDFIIdentification     string
	CheckDigit             string
	DFIAccountNumber       string
	Amount                 int64
	IdentificationNumber   string
	IndividualName         string
	DiscretionaryData      string
	AddendaRecordIndicator int
	TraceNumber            string
	Addenda                []Addenda

	raw string
}

// IsDebit reports whether the transaction code debits the receiver.
func (e *Entry) IsDebit() bool {
	switch e.TransactionCode {
	case 27, 28, 29, 37, 38, 39, 47, 48, 49, 55:
		return true
	}
	return false
}

// Addenda is a type 7 record. Which fields are set depends on TypeCode:
// 02 (point of sale), 05 (payment information), 98 (notification of
// change) or 99 (return).
type Addenda struct {
	TypeCode string

	// 02
	TerminalIdentificationCode string
	TerminalLocation           string
	TerminalCity               string
	TerminalState              string

	// 05
	PaymentRelatedInformation string
	SequenceNumber            int
	EntryDetailSequenceNumber int

	// 98 and 99
	ChangeCode         string
	ReturnCode         string
	OriginalTrace      string
	OriginalDFI        string
	CorrectedData      string
	DateOfDeath        string
	AddendaInformation string

	TraceNumber string
}

// IsReturn reports whether the addenda carries a return.
func (a Addenda) IsReturn() bool { return a.TypeCode == "99" }

// IsCorrection reports whether the addenda is a notification of change.
func (a Addenda) IsCorrection() bool { return a.TypeCode == "98" }
