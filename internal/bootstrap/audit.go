package bootstrap

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLog merekam siapa melakukan apa lewat endpoint mutasi.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID   string    `gorm:"size:100;index"`
	Method    string    `gorm:"size:10;not null"`
	Path      string    `gorm:"size:512;not null"`
	Status    int       `gorm:"not null"`
	ClientIP  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type AuditLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAuditLogger(db *gorm.DB, logger *zap.Logger) *AuditLogger {
	return &AuditLogger{db: db, logger: logger.Named("audit")}
}

// Middleware menulis jejak audit untuk request mutasi (bukan GET) setelah
// handler selesai. Gagal menulis audit tidak mengubah respons request.
func (a *AuditLogger) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		actorID := ""
		if v, ok := c.Get("user_id"); ok {
			if s, ok := v.(string); ok {
				actorID = s
			}
		}

		entry := AuditLog{
			ID:       uuid.New(),
			ActorID:  actorID,
			Method:   c.Request.Method,
			Path:     c.FullPath(),
			Status:   c.Writer.Status(),
			ClientIP: c.ClientIP(),
		}
		if entry.Path == "" {
			entry.Path = c.Request.URL.Path
		}

		if err := a.db.Create(&entry).Error; err != nil {
			a.logger.Warn("audit write failed",
				zap.String("path", entry.Path),
				zap.Error(err),
			)
		}
	}
}
