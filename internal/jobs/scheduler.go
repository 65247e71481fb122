package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/souqsyria/backend/internal/services/kyc"
	"github.com/souqsyria/backend/internal/services/membership"
)

// Scheduler runs the recurring maintenance sweeps: KYC document expiry and
// membership expiry
type Scheduler struct {
	scheduler     *gocron.Scheduler
	kycSvc        *kyc.Service
	membershipSvc *membership.Service
}

// NewScheduler creates a scheduler with all recurring jobs registered
func NewScheduler(kycSvc *kyc.Service, membershipSvc *membership.Service) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		kycSvc:        kycSvc,
		membershipSvc: membershipSvc,
	}
}

// Start schedules the sweeps and begins running them asynchronously
func (s *Scheduler) Start() error {
	// KYC documents past their validity window move to expired
	_, err := s.scheduler.Every(1).Day().At("02:00").Do(func() {
		s.runKycExpirySweep()
	})
	if err != nil {
		return err
	}

	// memberships past expires_at lose their benefits
	_, err = s.scheduler.Every(1).Hour().Do(func() {
		s.runMembershipExpirySweep()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Println("job scheduler started")
	return nil
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runKycExpirySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := s.kycSvc.ExpireDocuments(ctx, time.Now())
	if err != nil {
		log.Printf("kyc expiry sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("kyc expiry sweep: expired %d documents", count)
	}
}

func (s *Scheduler) runMembershipExpirySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := s.membershipSvc.ExpireMemberships(ctx, time.Now())
	if err != nil {
		log.Printf("membership expiry sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("membership expiry sweep: expired %d memberships", count)
	}
}
