package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/core/domain/services"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var ErrAuditIndexesQueryIsNotConstructed = errors.New(
	"AuditIndexesQuery must be created via NewAuditIndexesQuery constructor",
)

// AuditIndexesQuery checks every index of every record kind against the
// stored records. All kinds are read in one transaction.
type AuditIndexesQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditIndexesQuery() AuditIndexesQuery {
	return AuditIndexesQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditIndexesQuery) Validate() error {
	return q.guard.Validate(ErrAuditIndexesQueryIsNotConstructed)
}

type AuditIndexesQueryResponse struct {
	Records    int                  `json:"records"`
	Violations []services.Violation `json:"violations"`
}

type AuditIndexesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	auditor    services.IndexAuditor
}

func NewAuditIndexesQueryHandler(uowFactory ports.UnitOfWorkFactory) AuditIndexesQueryHandler {
	return AuditIndexesQueryHandler{uowFactory: uowFactory, auditor: services.NewIndexAuditor()}
}

func (h AuditIndexesQueryHandler) Handle(ctx context.Context, query AuditIndexesQuery) (AuditIndexesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuditIndexesQueryResponse{}, err
	}

	snapshots, err := inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]records.Snapshot, error) {
		out := make([]records.Snapshot, 0, len(Kinds()))
		for _, kind := range Kinds() {
			snapshot, err := indexedRepository(uow, kind).Snapshot(ctx)
			if err != nil {
				return nil, fmt.Errorf("snapshot %s: %w", kind, err)
			}
			out = append(out, snapshot)
		}
		return out, nil
	})
	if err != nil {
		return AuditIndexesQueryResponse{}, err
	}

	resp := AuditIndexesQueryResponse{Violations: h.auditor.Audit(snapshots...)}
	for _, s := range snapshots {
		resp.Records += len(s.Keys)
	}
	if resp.Violations == nil {
		resp.Violations = []services.Violation{}
	}
	return resp, nil
}
