package ach

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRecord is returned for records that are unknown or out of order.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrMissingHeader is returned when the first record is not a file header.
	ErrMissingHeader = errors.New("missing file header")
)

// ParseError locates a failure inside a file.
type ParseError struct {
	Line   int
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (record %q): %v", e.Line, e.Record, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a complete file from data.
func Parse(data []byte) (*File, error) {
	return NewReader(bytes.NewReader(data)).Read()
}

// Reader parses NACHA records from an io.Reader.
type Reader struct {
	scanner *bufio.Scanner
	line    int

	file    *File
	batch   *Batch
	entry   *Entry
	records []string
}

// NewReader creates a reader.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// Read parses the whole input and assigns ids to the file, its batches and entries.
func (r *Reader) Read() (*File, error) {
	for r.scanner.Scan() {
		text := strings.TrimRight(r.scanner.Text(), "\r")
		// Some producers omit line breaks entirely.
		for _, rec := range splitRecords(text) {
			r.line++
			if err := r.parseRecord(rec); err != nil {
				return nil, &ParseError{Line: r.line, Record: string(rec[0]), Err: err}
			}
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if r.file == nil {
		return nil, ErrMissingHeader
	}
	if r.batch != nil {
		return nil, &ParseError{Line: r.line, Record: "8", Err: fmt.Errorf("%w: batch %d has no control record", ErrInvalidRecord, r.batch.Header.BatchNumber)}
	}
	PopulateIDs(r.file, r.records)
	return r.file, nil
}

func splitRecords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= RecordLength {
		return []string{pad(text)}
	}
	var out []string
	for len(text) > 0 {
		n := min(RecordLength, len(text))
		out = append(out, pad(text[:n]))
		text = text[n:]
	}
	return out
}

// pad right-fills short records with spaces.
func pad(rec string) string {
	if len(rec) < RecordLength {
		return rec + strings.Repeat(" ", RecordLength-len(rec))
	}
	return rec
}

func (r *Reader) parseRecord(rec string) error {
	if r.file == nil && rec[0] != FileHeaderType {
		return ErrMissingHeader
	}
	switch rec[0] {
	case FileHeaderType:
		if r.file != nil {
			return fmt.Errorf("%w: second file header", ErrInvalidRecord)
		}
		r.file = &File{Header: parseFileHeader(rec)}
	case BatchHeaderType:
		if r.batch != nil {
			return fmt.Errorf("%w: batch header inside batch %d", ErrInvalidRecord, r.batch.Header.BatchNumber)
		}
		r.batch = &Batch{Header: parseBatchHeader(rec)}
		r.entry = nil
	case EntryDetailType:
		if r.batch == nil {
			return fmt.Errorf("%w: entry outside of a batch", ErrInvalidRecord)
		}
		e, err := parseEntry(rec)
		if err != nil {
			return err
		}
		r.batch.Entries = append(r.batch.Entries, e)
		r.entry = e
	case AddendaType:
		if r.entry == nil {
			return fmt.Errorf("%w: addenda without an entry", ErrInvalidRecord)
		}
		r.entry.Addenda = append(r.entry.Addenda, parseAddenda(rec))
	case BatchControlType:
		if r.batch == nil {
			return fmt.Errorf("%w: batch control without a batch", ErrInvalidRecord)
		}
		ctrl, err := parseBatchControl(rec)
		if err != nil {
			return err
		}
		r.batch.Control = ctrl
		r.file.Batches = append(r.file.Batches, r.batch)
		r.batch, r.entry = nil, nil
	case FileControlType:
		if strings.Trim(rec, "9") == "" {
			return nil
		}
		ctrl, err := parseFileControl(rec)
		if err != nil {
			return err
		}
		r.file.Control = ctrl
	default:
		return fmt.Errorf("%w: unknown record type %q", ErrInvalidRecord, rec[0])
	}
	r.records = append(r.records, rec)
	return nil
}

// field returns the trimmed text between 1-based inclusive positions.
func field(rec string, from, to int) string {
	return strings.TrimSpace(rec[from-1 : to])
}

// number parses a zero-filled numeric field. Blank fields are zero.
func number(rec string, from, to int, name string) (int64, error) {
	s := field(rec, from, to)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not numeric", ErrInvalidRecord, name, s)
	}
	return n, nil
}

// lenient parses numeric fields that are informational only.
func lenient(rec string, from, to int) int {
	n, _ := strconv.Atoi(field(rec, from, to))
	return n
}

func parseFileHeader(rec string) FileHeader {
	return FileHeader{
		ImmediateDestination:     field(rec, 4, 13),
		ImmediateOrigin:          field(rec, 14, 23),
		FileCreationDate:         field(rec, 24, 29),
		FileCreationTime:         field(rec, 30, 33),
		FileIDModifier:           field(rec, 34, 34),
		ImmediateDestinationName: field(rec, 41, 63),
		ImmediateOriginName:      field(rec, 64, 86),
		ReferenceCode:            field(rec, 87, 94),
		raw:                      rec,
	}
}

func parseBatchHeader(rec string) BatchHeader {
	return BatchHeader{
		ServiceClassCode:        lenient(rec, 2, 4),
		CompanyName:             field(rec, 5, 20),
		CompanyDiscretionary:    field(rec, 21, 40),
		CompanyIdentification:   field(rec, 41, 50),
		StandardEntryClassCode:  field(rec, 51, 53),
		CompanyEntryDescription: field(rec, 54, 63),
		CompanyDescriptiveDate:  field(rec, 64, 69),
		EffectiveEntryDate:      field(rec, 70, 75),
		SettlementDate:          field(rec, 76, 78),
		OriginatorStatusCode:    field(rec, 79, 79),
		ODFIIdentification:      field(rec, 80, 87),
		BatchNumber:             lenient(rec, 88, 94),
		raw:                     rec,
	}
}

func parseEntry(rec string) (*Entry, error) {
	tc, err := number(rec, 2, 3, "transaction code")
	if err != nil {
		return nil, err
	}
	amount, err := number(rec, 30, 39, "amount")
	if err != nil {
		return nil, err
	}
	return &Entry{
		TransactionCode:        int(tc),
		RDFIIdentification:     field(rec, 4, 11),
		CheckDigit:             field(rec, 12, 12),
		DFIAccountNumber:       field(rec, 13, 29),
		Amount:                 amount,
		IdentificationNumber:   field(rec, 40, 54),
		IndividualName:         field(rec, 55, 76),
		DiscretionaryData:      field(rec, 77, 78),
		AddendaRecordIndicator: lenient(rec, 79, 79),
		TraceNumber:            field(rec, 80, 94),
		raw:                    rec,
	}, nil
}

func parseAddenda(rec string) Addenda {
	a := Addenda{TypeCode: field(rec, 2, 3)}
	switch a.TypeCode {
	case "02":
		a.TerminalIdentificationCode = field(rec, 14, 19)
		a.TerminalLocation = field(rec, 36, 62)
		a.TerminalCity = field(rec, 63, 77)
		a.TerminalState = field(rec, 78, 79)
		a.TraceNumber = field(rec, 80, 94)
	case "98":
		a.ChangeCode = field(rec, 4, 6)
		a.OriginalTrace = field(rec, 7, 21)
		a.OriginalDFI = field(rec, 28, 35)
		a.CorrectedData = field(rec, 36, 64)
		a.TraceNumber = field(rec, 80, 94)
	case "99":
		a.ReturnCode = field(rec, 4, 6)
		a.OriginalTrace = field(rec, 7, 21)
		a.DateOfDeath = field(rec, 22, 27)
		a.OriginalDFI = field(rec, 28, 35)
		a.AddendaInformation = field(rec, 36, 79)
		a.TraceNumber = field(rec, 80, 94)
	default:
		a.PaymentRelatedInformation = field(rec, 4, 83)
		a.SequenceNumber = lenient(rec, 84, 87)
		a.EntryDetailSequenceNumber = lenient(rec, 88, 94)
	}
	return a
}

func parseBatchControl(rec string) (BatchControl, error) {
	debit, err := number(rec, 21, 32, "total debit")
	if err != nil {
		return BatchControl{}, err
	}
	credit, err := number(rec, 33, 44, "total credit")
	if err != nil {
		return BatchControl{}, err
	}
	return BatchControl{
		ServiceClassCode:      lenient(rec, 2, 4),
		EntryAddendaCount:     lenient(rec, 5, 10),
		EntryHash:             lenient(rec, 11, 20),
		TotalDebit:            debit,
		TotalCredit:           credit,
		CompanyIdentification: field(rec, 45, 54),
		ODFIIdentification:    field(rec, 80, 87),
		BatchNumber:           lenient(rec, 88, 94),
		raw:                   rec,
	}, nil
}

func parseFileControl(rec string) (FileControl, error) {
	debit, err := number(rec, 32, 43, "total debit")
	if err != nil {
		return FileControl{}, err
	}
	credit, err := number(rec, 44, 55, "total credit")
	if err != nil {
		return FileControl{}, err
	}
	return FileControl{
		BatchCount:        lenient(rec, 2, 7),
		BlockCount:        lenient(rec, 8, 13),
		EntryAddendaCount: lenient(rec, 14, 21),
		EntryHash:         lenient(rec, 22, 31),
		TotalDebit:        debit,
		TotalCredit:       credit,
		raw:               rec,
	}, nil
}
