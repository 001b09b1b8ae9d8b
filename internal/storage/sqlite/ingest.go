package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cristianoliveira/railsql/internal/ach"
	"github.com/cristianoliveira/railsql/internal/domain"
)

// createdAtLayout matches SQLite's datetime() output so stored times
// compare with datetime('now', ...) expressions.
const createdAtLayout = "2006-01-02 15:04:05"

const insertFileSQL = `INSERT OR IGNORE INTO main.ach_files (
	file_id, filename, immediate_destination, immediate_origin,
	file_creation_date, file_creation_time, file_id_modifier,
	immediate_destination_name, immediate_origin_name, reference_code,
	batch_count, block_count, entry_addenda_count, entry_hash,
	total_debit_entry_dollar_amount, total_credit_entry_dollar_amount, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertBatchSQL = `INSERT OR IGNORE INTO main.ach_batches (
	batch_id, file_id, service_class_code, company_name, company_discretionary_data,
	company_identification, standard_entry_class_code, company_entry_description,
	company_descriptive_date, effective_entry_date, settlement_date,
	originator_status_code, odfi_identification, batch_number,
	entry_addenda_count, entry_hash, total_debit_entry_dollar_amount, total_credit_entry_dollar_amount
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertEntrySQL = `INSERT OR IGNORE INTO main.ach_entries (
	entry_id, batch_id, file_id, transaction_code, rdfi_identification, check_digit,
	dfi_account_number, amount, individual_identification_number, individual_name,
	discretionary_data, addenda_record_indicator, trace_number
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertAddendaSQL = `INSERT OR IGNORE INTO main.ach_addendas (
	entry_id, batch_id, file_id, addenda_index, type_code,
	terminal_identification_code, terminal_location, terminal_city, terminal_state,
	payment_related_information, addenda_sequence_number, entry_detail_sequence_number,
	change_code, return_code, original_entry_trace_number, original_rdfi_identification,
	corrected_data, date_of_death, addenda_information, trace_number
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Ingest parses files and stores the ones not indexed yet. Files that fail
// to parse are counted in Failed and skipped; storage errors abort the run.
func (x *Index) Ingest(ctx context.Context, files []domain.File) (domain.IngestStats, error) {
	var stats domain.IngestStats
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		parsed, err := ach.Parse(f.Contents)
		if err != nil {
			stats.Failed++
			x.logger.Warn("skipping unreadable ACH file", "path", f.Path, "error", err)
			continue
		}
		ach.Mask(parsed, x.mask)

		fileStats, err := x.store(ctx, f, parsed)
		if err != nil {
			return stats, fmt.Errorf("sqlite index: store %s: %w", f.Name, err)
		}
		if fileStats.Files > 0 {
			x.logger.Debug("indexed ACH file", "path", f.Path, "file_id", parsed.ID, "entries", fileStats.Entries)
		}
		stats.Add(fileStats)
	}
	return stats, nil
}

func (x *Index) store(ctx context.Context, f domain.File, parsed *ach.File) (stats domain.IngestStats, err error) {
	stats.FileIDs = []string{parsed.ID}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	h, c := parsed.Header, parsed.Control
	inserted, err := execCount(ctx, tx, insertFileSQL,
		parsed.ID, f.Name, h.ImmediateDestination, h.ImmediateOrigin,
		h.FileCreationDate, h.FileCreationTime, h.FileIDModifier,
		h.ImmediateDestinationName, h.ImmediateOriginName, nullable(h.ReferenceCode),
		c.BatchCount, c.BlockCount, c.EntryAddendaCount, c.EntryHash,
		c.TotalDebit, c.TotalCredit, f.ModTime.UTC().Format(createdAtLayout))
	if err != nil {
		return stats, err
	}
	if inserted == 0 {
		// Already indexed; its rows are keyed by the same ids.
		return stats, tx.Commit()
	}
	stats.Files++

	for _, b := range parsed.Batches {
		bh, bc := b.Header, b.Control
		n, err := execCount(ctx, tx, insertBatchSQL,
			b.ID, parsed.ID, bh.ServiceClassCode, bh.CompanyName, nullable(bh.CompanyDiscretionary),
			bh.CompanyIdentification, bh.StandardEntryClassCode, bh.CompanyEntryDescription,
			nullable(bh.CompanyDescriptiveDate), bh.EffectiveEntryDate, nullable(bh.SettlementDate),
			bh.OriginatorStatusCode, bh.ODFIIdentification, bh.BatchNumber,
			bc.EntryAddendaCount, bc.EntryHash, bc.TotalDebit, bc.TotalCredit)
		if err != nil {
			return stats, err
		}
		stats.Batches += int(n)

		for _, e := range b.Entries {
			n, err := execCount(ctx, tx, insertEntrySQL,
				e.ID, b.ID, parsed.ID, e.TransactionCode, e.RDFIIdentification, e.CheckDigit,
				e.DFIAccountNumber, e.Amount, nullable(e.IdentificationNumber), e.IndividualName,
				nullable(e.DiscretionaryData), e.AddendaRecordIndicator, e.TraceNumber)
			if err != nil {
				return stats, err
			}
			stats.Entries += int(n)

			for i, a := range e.Addenda {
				n, err := execCount(ctx, tx, insertAddendaSQL, addendaArgs(e.ID, b.ID, parsed.ID, i, a)...)
				if err != nil {
					return stats, err
				}
				stats.Addendas += int(n)
			}
		}
	}

	return stats, tx.Commit()
}

func addendaArgs(entryID, batchID, fileID string, index int, a ach.Addenda) []any {
	var seq, entrySeq any
	if a.TypeCode == "05" {
		seq, entrySeq = a.SequenceNumber, a.EntryDetailSequenceNumber
	}
	return []any{
		entryID, batchID, fileID, index, a.TypeCode,
		nullable(a.TerminalIdentificationCode), nullable(a.TerminalLocation),
		nullable(a.TerminalCity), nullable(a.TerminalState),
		nullable(a.PaymentRelatedInformation), seq, entrySeq,
		nullable(a.ChangeCode), nullable(a.ReturnCode), nullable(a.OriginalTrace),
		nullable(a.OriginalDFI), nullable(a.CorrectedData), nullable(a.DateOfDeath),
		nullable(a.AddendaInformation), nullable(a.TraceNumber),
	}
}

func execCount(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(errors.New("rows affected"), err)
	}
	return n, nil
}

// nullable stores blank fields as NULL so "IS NULL" filters work.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
