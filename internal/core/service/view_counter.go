package service

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
)

// DefaultAdminPath is the path segment that marks admin-console traffic in
// the Referer header.
const DefaultAdminPath = "/admin"

// ViewCounter decides, after a single-record read, whether the post's view
// count should be bumped, and hands qualifying reads to a background
// scheduler. It never blocks and never reports failures to the reader.
type ViewCounter struct {
	scheduler ports.ViewScheduler
	adminPath string
	log       zerolog.Logger
}

// NewViewCounter returns a ViewCounter backed by scheduler. An empty
// adminPath selects DefaultAdminPath.
func NewViewCounter(scheduler ports.ViewScheduler, adminPath string, log zerolog.Logger) *ViewCounter {
	adminPath = strings.TrimRight(adminPath, "/")
	if adminPath == "" {
		adminPath = DefaultAdminPath
	}
	return &ViewCounter{scheduler: scheduler, adminPath: adminPath, log: log}
}

// AfterRead reports whether an increment was scheduled for post.
func (v *ViewCounter) AfterRead(post *domain.Post, meta ports.ReadMeta) bool {
	if v == nil || v.scheduler == nil {
		return false
	}
	if post == nil || post.ID == "" {
		return false
	}
	if meta.ListQuery || v.fromAdmin(meta.Referer) {
		return false
	}

	if !v.scheduler.Schedule(post.ID) {
		v.log.Debug().Str("post_id", post.ID).Msg("view increment dropped")
		return false
	}
	return true
}

// fromAdmin reports whether referer points into the admin console, that is
// its path is adminPath or lies below it.
func (v *ViewCounter) fromAdmin(referer string) bool {
	if referer == "" {
		return false
	}
	u, err := url.Parse(referer)
	if err != nil {
		return false
	}
	return u.Path == v.adminPath || strings.HasPrefix(u.Path, v.adminPath+"/")
}
