package notify

import (
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
)

type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type AppointmentEmail struct {
	ServiceName     string
	ServiceDuration int
	Date            string
	Time            string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ClientNotes     string
}

// SendContactNotification queues the practitioner-facing copy of a contact
// form submission.
func (s *Service) SendContactNotification(in ContactEmail) {
	phone := ""
	if in.Phone != "" {
		phone = fmt.Sprintf("<p><strong>Phone:</strong> %s</p>", html.EscapeString(in.Phone))
	}

	body := fmt.Sprintf(`
    <div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
      <h2>New Contact Form Submission</h2>
      <p><strong>Name:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      %s
      <h3>Message:</h3>
      <p style="white-space: pre-wrap;">%s</p>
    </div>`,
		html.EscapeString(in.Name),
		html.EscapeString(in.Email),
		phone,
		html.EscapeString(in.Message),
	)

	s.enqueue("contact_notification", &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.contactEmail},
		ReplyTo: in.Email,
		Subject: "New Contact Form: " + in.Name,
		Html:    body,
	})
}

// SendContactConfirmation queues the submitter-facing acknowledgement.
func (s *Service) SendContactConfirmation(in ContactEmail) {
	body := fmt.Sprintf(`
    <div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
      <h2>Thank You for Reaching Out</h2>
      <p>Dear %s,</p>
      <p>Thank you for your message. We have received it and will get back
      to you within 1-2 business days.</p>
      <p style="color: #666; font-size: 12px;">This is an automated
      confirmation. Please do not reply to this email.</p>
    </div>`,
		html.EscapeString(in.Name),
	)

	s.enqueue("contact_confirmation", &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{in.Email},
		Subject: "Thank you for contacting Cedar Path",
		Html:    body,
	})
}

// SendAppointmentNotification queues the practitioner-facing booking alert.
func (s *Service) SendAppointmentNotification(in AppointmentEmail) {
	body := appointmentBody(in, `<p style="color: #666; font-size: 12px;">
      Please confirm this appointment with the client directly.</p>`)

	s.enqueue("appointment_notification", &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.contactEmail},
		ReplyTo: in.ClientEmail,
		Subject: fmt.Sprintf("New Appointment: %s - %s at %s", in.ServiceName, in.Date, in.Time),
		Html:    body,
	})
}

// SendAppointmentConfirmation queues the client-facing booking receipt.
func (s *Service) SendAppointmentConfirmation(in AppointmentEmail) {
	body := appointmentBody(in, `<p><strong>Please note:</strong> this is a
      request confirmation. We will contact you within 24 hours to confirm
      the appointment and provide meeting details.</p>`)

	s.enqueue("appointment_confirmation", &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{in.ClientEmail},
		Subject: fmt.Sprintf("Appointment Request: %s on %s", in.ServiceName, in.Date),
		Html:    body,
	})
}

func appointmentBody(in AppointmentEmail, footer string) string {
	extra := ""
	if in.ClientPhone != "" {
		extra += fmt.Sprintf("<p><strong>Phone:</strong> %s</p>", html.EscapeString(in.ClientPhone))
	}
	if in.ClientNotes != "" {
		extra += fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", html.EscapeString(in.ClientNotes))
	}

	return fmt.Sprintf(`
    <div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
      <h2>Appointment Request</h2>
      <h3>%s</h3>
      <p><strong>Duration:</strong> %d minutes</p>
      <p><strong>Date:</strong> %s</p>
      <p><strong>Time:</strong> %s</p>
      <h3>Client</h3>
      <p><strong>Name:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      %s
      %s
    </div>`,
		html.EscapeString(in.ServiceName),
		in.ServiceDuration,
		html.EscapeString(in.Date),
		html.EscapeString(in.Time),
		html.EscapeString(in.ClientName),
		html.EscapeString(in.ClientEmail),
		extra,
		footer,
	)
}
