package notify

import (
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
)

// EmailSender is the outbound edge. The production implementation wraps the
// Resend client; tests substitute a recording or failing sender.
type EmailSender interface {
	Send(req *resend.SendEmailRequest) error
}

type resendSender struct {
	client *resend.Client
}

func (s *resendSender) Send(req *resend.SendEmailRequest) (err error) {
	_, err = s.client.Emails.Send(req)
	return err
}

const defaultFrom = "Cedar Path <noreply@cedarpath.example>"

// Service sends transactional email on a best-effort basis. Sends are
// queued and delivered by a background worker; a failure is logged and
// never surfaces to the request that triggered it. With no API key
// configured the service runs in log-only mode.
type Service struct {
	log          *zap.SugaredLogger
	sender       EmailSender
	from         string
	contactEmail string

	queue chan job
	done  chan struct{}
}

type job struct {
	kind string
	req  *resend.SendEmailRequest
}

func NewService(cfg *config.Config, log *zap.SugaredLogger) *Service {
	var sender EmailSender
	if cfg.ResendAPIKey != "" {
		sender = &resendSender{client: resend.NewClient(cfg.ResendAPIKey)}
	}
	return newService(sender, cfg.ContactEmail, log)
}

func newService(sender EmailSender, contactEmail string, log *zap.SugaredLogger) *Service {
	s := &Service{
		log:          log.Named("notify"),
		sender:       sender,
		from:         defaultFrom,
		contactEmail: contactEmail,
		queue:        make(chan job, 100),
		done:         make(chan struct{}),
	}

	go s.worker()
	return s
}

func (s *Service) worker() {
	defer close(s.done)
	for j := range s.queue {
		if s.sender == nil {
			s.log.Debugw("email disabled, skipping send", "kind", j.kind)
			continue
		}
		if err := s.sender.Send(j.req); err != nil {
			s.log.Errorw("failed to send email", "kind", j.kind, "error", err)
			continue
		}
		s.log.Debugw("email sent", "kind", j.kind)
	}
}

func (s *Service) enqueue(kind string, req *resend.SendEmailRequest) {
	select {
	case s.queue <- job{kind: kind, req: req}:
	default:
		// Queue full: drop rather than block a request on email.
		s.log.Warnw("email queue full, dropping send", "kind", kind)
	}
}

// Stop drains the queue and stops the worker.
func (s *Service) Stop() {
	close(s.queue)
	<-s.done
}
