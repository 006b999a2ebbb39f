package worker

import (
	"context"
	"os"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/google/uuid"
)

const defaultRenderTimeout = 15 * time.Minute

// processTask renders one job to its terminal state. The output file exists
// afterwards if and only if the job is completed; any partial file left by a
// failing pipeline is removed before the status flips to failed.
func (w *Worker) processTask(ctx context.Context, workerID int, task *models.RenderTask) {
	jobID, err := uuid.Parse(task.JobID)
	if err != nil {
		w.logger.Errorf("[Worker %d] Dropping task with invalid job id %q: %v", workerID, task.JobID, err)
		os.RemoveAll(task.WorkDir)
		return
	}

	w.logger.Infof("[Worker %d] Rendering job %s -> %s", workerID, task.JobID, task.OutputPath)
	start := time.Now()

	renderTimeout := defaultRenderTimeout
	if w.cfg.Render.TimeoutSeconds > 0 {
		renderTimeout = time.Duration(w.cfg.Render.TimeoutSeconds) * time.Second
	}
	renderCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	result, err := w.renderer.Assemble(renderCtx, task)

	// Staged images are no longer needed whichever way rendering went.
	defer os.RemoveAll(task.WorkDir)

	if err != nil {
		w.logger.Errorf("[Worker %d] Job %s failed: %v", workerID, task.JobID, err)
		if removeErr := os.Remove(task.OutputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			w.logger.Errorf("[Worker %d] Failed to remove partial output %s: %v", workerID, task.OutputPath, removeErr)
		}
		w.finishJob(ctx, jobID, models.JobStatusFailed, err.Error())
		return
	}

	w.logger.Infof("[Worker %d] Job %s rendered: %d slides, %.1fs video in %s",
		workerID, task.JobID, result.SlideCount, result.Duration, time.Since(start))
	for _, skip := range result.Skipped {
		w.logger.Warnf("[Worker %d] Job %s slide %d was skipped: %s", workerID, task.JobID, skip.Index, skip.Reason)
	}

	if w.cfg.S3.ArchiveEnabled {
		if err = w.awsRepo.UploadFile(ctx, w.cfg.S3.ArchiveBucket, task.JobID+".mp4", task.OutputPath); err != nil {
			// Archival is best effort; the local asset stays the source of truth.
			w.logger.Errorf("[Worker %d] Archive upload failed for job %s: %v", workerID, task.JobID, err)
		}
	}

	w.finishJob(ctx, jobID, models.JobStatusCompleted, "")
}

func (w *Worker) finishJob(ctx context.Context, jobID uuid.UUID, status models.JobStatus, errorMessage string) {
	job, err := w.jobRepo.UpdateStatus(ctx, jobID, status, errorMessage)
	if err != nil {
		w.logger.Errorf("Failed to update job %s to %s: %v", jobID, status, err)
		return
	}
	if err = w.redisRepo.CacheJob(ctx, job); err != nil {
		w.logger.Warnf("Failed to cache job %s: %v", jobID, err)
	}
}
