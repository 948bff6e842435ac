package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// LedgerStore is the finance collaborator consumed by the expense side effect.
// It lives in its own storage domain: the workflow engine commits the status
// write first and only then records the entry here (see the side-effect
// dispatcher), so the two writes are never part of one database transaction.
type LedgerStore interface {
	RecordExpense(ctx context.Context, entry *model.FinanceLedgerEntry) error
	List(ctx context.Context, page, limit int) ([]model.FinanceLedgerEntry, int64, error)
}

type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore returns a gorm-backed LedgerStore
func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &ledgerStore{db: db}
}

func (r *ledgerStore) RecordExpense(ctx context.Context, entry *model.FinanceLedgerEntry) error {
	// Deliberately not GetDB: the ledger write must not join a request-store
	// transaction even if one is open in the context.
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerStore) List(ctx context.Context, page, limit int) ([]model.FinanceLedgerEntry, int64, error) {
	var entries []model.FinanceLedgerEntry
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.FinanceLedgerEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
