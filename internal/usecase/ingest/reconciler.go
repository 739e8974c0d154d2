package ingest

import (
	"context"
	"fmt"
	"time"

	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/repository"
)

// Reconciler merges fetched records into the store keyed by (source, url).
// A record seen for the first time is inserted; a record already present is
// refreshed in place, keeping its identity and creation timestamp so that
// repeated runs never multiply rows.
type Reconciler struct {
	Repo repository.SubsidyRepository
}

// UpsertResult reports what a single reconciliation did.
type UpsertResult struct {
	Inserted bool
	Updated  bool
}

// Upsert reconciles one record. The incoming record carries no identity;
// the (Source, URL) pair is the natural key.
func (r *Reconciler) Upsert(ctx context.Context, incoming *entity.Subsidy) (UpsertResult, error) {
	if err := incoming.Validate(); err != nil {
		return UpsertResult{}, fmt.Errorf("Upsert: %w", err)
	}

	existing, err := r.Repo.FindBySourceURL(ctx, incoming.Source, incoming.URL)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("Upsert: find by source and url: %w", err)
	}

	now := time.Now()
	if existing == nil {
		incoming.CreatedAt = now
		incoming.UpdatedAt = now
		if err := r.Repo.Create(ctx, incoming); err != nil {
			return UpsertResult{}, fmt.Errorf("Upsert: create: %w", err)
		}
		return UpsertResult{Inserted: true}, nil
	}

	// ID と created_at は既存行のまま維持する
	existing.Title = incoming.Title
	existing.Description = incoming.Description
	existing.Organization = incoming.Organization
	existing.Target = incoming.Target
	existing.Amount = incoming.Amount
	existing.ApplicationStart = incoming.ApplicationStart
	existing.ApplicationEnd = incoming.ApplicationEnd
	existing.Keywords = incoming.Keywords
	existing.UpdatedAt = now

	if err := r.Repo.Update(ctx, existing); err != nil {
		return UpsertResult{}, fmt.Errorf("Upsert: update: %w", err)
	}
	return UpsertResult{Updated: true}, nil
}
