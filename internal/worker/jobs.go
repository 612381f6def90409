package worker

import "context"

// RenderCertificateJob draws a user's certificate into the on-disk cache so
// the first download after eligibility is served without rendering inline.
type RenderCertificateJob struct {
	Warmer CertificateWarmer
	UserID int64
}

func (j *RenderCertificateJob) Name() string { return "render_certificate" }

func (j *RenderCertificateJob) Run(ctx context.Context) error {
	return j.Warmer.WarmCache(ctx, j.UserID)
}
