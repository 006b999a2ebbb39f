package repository

const (
	createJobQuery = `INSERT INTO ad_jobs (source_url, product_title, video_filename, status)
					VALUES ($1, $2, $3, $4) RETURNING *`
	getJobByIDQuery = `SELECT job_id, source_url, product_title, video_filename, status, error_message, created_at, updated_at
					FROM ad_jobs WHERE job_id = $1`
	getJobByFilenameQuery = `SELECT job_id, source_url, product_title, video_filename, status, error_message, created_at, updated_at
					FROM ad_jobs WHERE video_filename = $1`
	listJobsQuery = `SELECT job_id, source_url, product_title, video_filename, status, error_message, created_at, updated_at
					FROM ad_jobs ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	getTotalJobsQuery = `SELECT COUNT(job_id) FROM ad_jobs`
	setFilenameQuery  = `UPDATE ad_jobs SET video_filename = $2, updated_at = now()
					WHERE job_id = $1 RETURNING *`
	updateStatusQuery = `UPDATE ad_jobs SET status = $2, error_message = $3, updated_at = now()
					WHERE job_id = $1 AND status = 'processing' RETURNING *`
	deleteJobQuery = `DELETE FROM ad_jobs WHERE job_id = $1`
)
