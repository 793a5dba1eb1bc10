package auditlog

import (
	"context"

	"github.com/JungleeAadmi/component-storage/pkg/models"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"go.uber.org/zap"
)

type Repository interface {
	PersistLog(auditLog models.AuditLog, data interface{}) error
	GetResourceLog(id int, resourceType string) ([]models.AuditLog, error)
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Recorder is what services depend on to record changes.
type Recorder interface {
	Log(ctx context.Context, action string, data interface{}, item Auditable)
}

type Auditlog struct {
	r   Repository
	log *zap.Logger
}

// Log records action against item on behalf of the user carried by ctx. Failures are
// logged and swallowed.
func (a *Auditlog) Log(ctx context.Context, action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	if userID := security.UserIDFromContext(ctx); userID != 0 {
		auditLog.UserID = &userID
	}

	if err := a.r.PersistLog(auditLog, data); err != nil {
		a.log.Warn("unable to create audit log entry",
			zap.String("resource_type", auditLog.ResourceType),
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	a.log.Debug("created audit log entry",
		zap.String("resource_type", auditLog.ResourceType),
		zap.Int("resource_id", auditLog.ResourceID),
		zap.String("action", action),
	)
}

func (a *Auditlog) History(item Auditable) ([]models.AuditLog, error) {
	view := item.CreateLogView()
	return a.r.GetResourceLog(view.ResourceID, view.ResourceType)
}

func NewAuditLog(repository Repository, log *zap.Logger) *Auditlog {
	return &Auditlog{r: repository, log: log}
}
