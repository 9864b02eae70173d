package job

import (
	"context"

	"github.com/mbavault/nbauto/internal/service"
)

// VaultScanJob re-processes the whole source directory on each tick. The
// summary cache in front of the summarizer keeps unchanged documents from
// hitting the backend again.
type VaultScanJob struct {
	notes     *service.NoteService
	sourceDir string
}

func NewVaultScanJob(notes *service.NoteService, sourceDir string) *VaultScanJob {
	return &VaultScanJob{notes: notes, sourceDir: sourceDir}
}

func (j *VaultScanJob) Name() string {
	return "vault_scan"
}

func (j *VaultScanJob) Run(ctx context.Context) error {
	if j.notes == nil {
		return nil
	}
	return j.notes.ProcessDir(ctx, j.sourceDir)
}
