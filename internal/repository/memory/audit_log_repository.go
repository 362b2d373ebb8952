package memory

import (
	"context"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type auditLogRepository struct {
	store *Store
}

func NewAuditLogRepository(store *Store) domainRepo.AuditLogRepository {
	return &auditLogRepository{store: store}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.auditSeq++
	log.ID = r.store.auditSeq
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.store.auditLogs = append(r.store.auditLogs, *log)
	return nil
}

func (r *auditLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.AuditLog, 0)
	for i := len(r.store.auditLogs) - 1; i >= 0; i-- {
		l := r.store.auditLogs[i]
		if l.UserID == nil || *l.UserID != userID {
			continue
		}
		list = append(list, l)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}
