package admin

// Tab is one section of the dashboard. The active tab lives in the URL path
// only; nothing is persisted.
type Tab string

const (
	TabStats        Tab = "stats"
	TabBooks        Tab = "books"
	TabSpeeches     Tab = "speeches"
	TabBlogs        Tab = "blogs"
	TabContacts     Tab = "contacts"
	TabEmails       Tab = "emails"
	TabTestimonials Tab = "testimonials"
	TabUpdates      Tab = "updates"
)

// Tabs is the dashboard order.
var Tabs = []Tab{TabStats, TabBooks, TabSpeeches, TabBlogs, TabContacts, TabEmails, TabTestimonials, TabUpdates}

var tabLabels = map[Tab]string{
	TabStats:        "Dashboard",
	TabBooks:        "Books",
	TabSpeeches:     "Speeches",
	TabBlogs:        "Blogs",
	TabContacts:     "Messages",
	TabEmails:       "Emails",
	TabTestimonials: "Testimonials",
	TabUpdates:      "Updates",
}

// Resolve maps a path segment to a Tab. Unknown values fall back to stats.
func Resolve(s string) Tab {
	t := Tab(s)
	if _, ok := tabLabels[t]; ok {
		return t
	}
	return TabStats
}

// Label is the tab's display name.
func (t Tab) Label() string { return tabLabels[t] }

// Path is the tab's URL.
func (t Tab) Path() string {
	if t == TabStats {
		return "/admin"
	}
	return "/admin/" + string(t)
}

type tabLink struct {
	Tab    Tab
	Label  string
	Href   string
	Active bool
}

func tabLinks(active Tab) []tabLink {
	out := make([]tabLink, 0, len(Tabs))
	for _, t := range Tabs {
		out = append(out, tabLink{Tab: t, Label: t.Label(), Href: t.Path(), Active: t == active})
	}
	return out
}
