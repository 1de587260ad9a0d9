package admin

import (
	"net/url"
	"strings"
)

// nouns name the entity each tab manages, as used in flash messages.
var nouns = map[Tab]string{
	TabBooks:        "Book",
	TabSpeeches:     "Speech",
	TabBlogs:        "Blog post",
	TabContacts:     "Message",
	TabEmails:       "Subscription",
	TabTestimonials: "Testimonial",
	TabUpdates:      "Update",
}

// toast turns the ?success= and ?error= flash codes left by a redirect into
// banner text for tab.
func toast(tab Tab, q url.Values) (success, failure string) {
	noun := nouns[tab]
	switch q.Get("success") {
	case "created":
		success = noun + " added successfully!"
	case "updated":
		success = noun + " updated successfully!"
	case "deleted":
		success = noun + " deleted successfully!"
	case "status":
		success = noun + " status updated successfully!"
	case "replied":
		success = "Reply sent successfully!"
	case "replied-nomail":
		success = "Reply saved, but the e-mail could not be sent."
	}
	switch q.Get("error") {
	case "delete":
		failure = "Failed to delete " + strings.ToLower(noun) + ". Please try again."
	case "status":
		failure = "Failed to update " + strings.ToLower(noun) + " status. Please try again."
	case "reply":
		failure = "Failed to send reply. Please try again."
	case "export":
		failure = "Failed to export subscriptions. Please try again."
	}
	return success, failure
}

func flash(tab Tab, key, code string) string {
	return tab.Path() + "?" + url.Values{key: {code}}.Encode()
}
