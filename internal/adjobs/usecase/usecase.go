package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/copywriter"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/internal/scraper"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
)

type adJobsUC struct {
	cfg       *config.Config
	jobRepo   adjobs.Repository
	redisRepo adjobs.RedisRepository
	awsRepo   adjobs.AWSRepository
	scraper   scraper.Scraper
	writer    copywriter.Copywriter
	logger    logger.Logger
}

func NewAdJobsUseCase(
	cfg *config.Config,
	jobRepo adjobs.Repository,
	redisRepo adjobs.RedisRepository,
	awsRepo adjobs.AWSRepository,
	scr scraper.Scraper,
	writer copywriter.Copywriter,
	log logger.Logger,
) adjobs.UseCase {
	return &adJobsUC{
		cfg:       cfg,
		jobRepo:   jobRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		scraper:   scr,
		writer:    writer,
		logger:    log,
	}
}

// GenerateAd runs the synchronous part of the pipeline: scrape, job row
// creation, copy generation and task enqueue. Rendering happens on the
// workers; the returned job is still processing.
func (u *adJobsUC) GenerateAd(ctx context.Context, input *models.GenerateAdInput) (*models.AdJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("GenerateAd - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	u.logger.Infof("Scraping product data for URL: %s", input.URL)
	page, err := u.scraper.Scrape(ctx, input.URL)
	if err != nil {
		u.logger.Errorf("GenerateAd - Scrape error: %v", err)
		return nil, fmt.Errorf("%w: %v", adjobs.ErrNoProductData, err)
	}
	if page.Product.Title == "" || len(page.Images) == 0 {
		return nil, adjobs.ErrNoProductData
	}

	job, err := u.jobRepo.CreateJob(ctx, &models.AdJob{
		SourceURL:    input.URL,
		ProductTitle: page.Product.Title,
		Status:       models.JobStatusProcessing,
	})
	if err != nil {
		u.logger.Errorf("GenerateAd - CreateJob error: %v", err)
		return nil, err
	}

	u.logger.Infof("Generating overlay copy for job %s (%d images)", job.JobID, len(page.Images))
	lines, err := u.writer.Generate(ctx, page.Product, len(page.Images))
	if err != nil || len(lines) == 0 {
		u.failJob(ctx, job.JobID, "no usable ad copy")
		if err != nil {
			u.logger.Errorf("GenerateAd - Generate error: %v", err)
			return nil, fmt.Errorf("%w: %v", adjobs.ErrNoAdCopy, err)
		}
		return nil, adjobs.ErrNoAdCopy
	}

	filename := fmt.Sprintf("ad_video_%s.mp4", uuid.New().String())
	updated, err := u.jobRepo.SetFilename(ctx, job.JobID, filename)
	if err != nil {
		u.logger.Errorf("GenerateAd - SetFilename error: %v", err)
		u.failJob(ctx, job.JobID, "failed to assign output asset")
		return nil, err
	}
	job = updated

	workDir := filepath.Join(u.cfg.Storage.WorkDir, job.JobID.String())
	imagePaths, err := saveImages(workDir, page.Images)
	if err != nil {
		u.logger.Errorf("GenerateAd - saveImages error: %v", err)
		os.RemoveAll(workDir)
		u.failJob(ctx, job.JobID, "failed to stage product images")
		return nil, err
	}

	task := &models.RenderTask{
		JobID:      job.JobID.String(),
		Title:      page.Product.Title,
		Price:      page.Product.Price,
		Bullets:    lines,
		ImagePaths: imagePaths,
		OutputPath: filepath.Join(u.cfg.Storage.VideosDir, filename),
		WorkDir:    workDir,
	}
	if err = u.redisRepo.EnqueueTask(ctx, u.cfg.Redis.TaskQueueKey, task); err != nil {
		u.logger.Errorf("GenerateAd - EnqueueTask error: %v", err)
		os.RemoveAll(workDir)
		u.failJob(ctx, job.JobID, "failed to queue render task")
		return nil, fmt.Errorf("failed to queue the render task: %w", err)
	}

	if err = u.redisRepo.CacheJob(ctx, job); err != nil {
		u.logger.Warnf("GenerateAd - CacheJob error: %v", err)
	}
	u.logger.Infof("Queued render task for job %s -> %s", job.JobID, filename)
	return job, nil
}

func (u *adJobsUC) GetJob(ctx context.Context, jobID uuid.UUID) (*models.AdJob, error) {
	if jobID == uuid.Nil {
		return nil, fmt.Errorf("invalid job id: cannot be empty")
	}

	if cached, err := u.redisRepo.GetCachedJob(ctx, jobID.String()); err == nil {
		return cached, nil
	}

	job, err := u.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			u.logger.Warnf("Job not found with ID: %s", jobID.String())
			return nil, fmt.Errorf("job not found")
		}
		u.logger.Errorf("GetJob - GetJobByID error: %v", err)
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	if err = u.redisRepo.CacheJob(ctx, job); err != nil {
		u.logger.Warnf("GetJob - CacheJob error: %v", err)
	}
	return job, nil
}

func (u *adJobsUC) ListJobs(ctx context.Context, pagination *utils.Pagination) (*models.JobList, error) {
	if pagination == nil {
		pagination = &utils.Pagination{
			Page: 1,
			Size: 10,
		}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}

	jobs, err := u.jobRepo.ListJobs(ctx, pagination)
	if err != nil {
		u.logger.Errorf("ListJobs - failed to fetch jobs: %v", err)
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes the record, its rendered asset and any staged work files.
func (u *adJobsUC) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return fmt.Errorf("invalid job id: cannot be empty")
	}

	job, err := u.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("job not found")
		}
		return fmt.Errorf("failed to fetch job: %w", err)
	}

	if err = u.jobRepo.DeleteJob(ctx, jobID); err != nil {
		u.logger.Errorf("DeleteJob - failed to delete job: %v", err)
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if job.VideoFilename != "" {
		videoPath := filepath.Join(u.cfg.Storage.VideosDir, job.VideoFilename)
		if err = os.Remove(videoPath); err != nil && !os.IsNotExist(err) {
			u.logger.Errorf("DeleteJob - failed to remove video file %s: %v", videoPath, err)
		}
	}
	os.RemoveAll(filepath.Join(u.cfg.Storage.WorkDir, jobID.String()))

	if u.cfg.S3.ArchiveEnabled {
		if err = u.awsRepo.RemoveObject(ctx, u.cfg.S3.ArchiveBucket, jobID.String()+".mp4"); err != nil {
			u.logger.Warnf("DeleteJob - failed to remove archived copy for %s: %v", jobID, err)
		}
	}

	if err = u.redisRepo.DeleteCachedJob(ctx, jobID.String()); err != nil {
		u.logger.Warnf("DeleteJob - DeleteCachedJob error: %v", err)
	}
	return nil
}

func (u *adJobsUC) ResolveVideo(ctx context.Context, filename string) (string, error) {
	job, err := u.jobRepo.GetJobByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", adjobs.ErrVideoUnavailable
		}
		return "", fmt.Errorf("failed to fetch job: %w", err)
	}
	if job.Status == models.JobStatusFailed {
		return "", adjobs.ErrVideoUnavailable
	}

	videoPath := filepath.Join(u.cfg.Storage.VideosDir, filename)
	if _, err = os.Stat(videoPath); err != nil {
		return "", adjobs.ErrVideoUnavailable
	}
	return videoPath, nil
}

func (u *adJobsUC) failJob(ctx context.Context, jobID uuid.UUID, reason string) {
	job, err := u.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusFailed, reason)
	if err != nil {
		u.logger.Errorf("failJob - UpdateStatus error for %s: %v", jobID, err)
		return
	}
	if err = u.redisRepo.CacheJob(ctx, job); err != nil {
		u.logger.Warnf("failJob - CacheJob error: %v", err)
	}
}

func saveImages(workDir string, images [][]byte) ([]string, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	paths := make([]string, 0, len(images))
	for i, data := range images {
		path := filepath.Join(workDir, fmt.Sprintf("img_%03d.jpg", i))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write image %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
