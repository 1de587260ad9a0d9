// internal/app/features/about/handler.go
package about

import (
	"fmt"
	"net/http"

	"github.com/jawahirullah/portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type milestone struct {
	Year  int
	Title string
	Desc  string
}

type pageData struct {
	viewdata.BaseVM
	Milestones   []milestone
	Achievements []string
}

// milestoneYears are the timeline entries; copy lives in the catalog under
// about.m<year>_title and about.m<year>_desc.
var milestoneYears = []int{1998, 2006, 2011, 2016, 2021}

const achievementCount = 4

type Handler struct {
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Render: viewdata.Render}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	data := pageData{BaseVM: viewdata.NewBaseVM(r, "about.title", "/")}
	t := data.T
	for _, y := range milestoneYears {
		data.Milestones = append(data.Milestones, milestone{
			Year:  y,
			Title: t(fmt.Sprintf("about.m%d_title", y)),
			Desc:  t(fmt.Sprintf("about.m%d_desc", y)),
		})
	}
	for i := 1; i <= achievementCount; i++ {
		data.Achievements = append(data.Achievements, t(fmt.Sprintf("about.achievement_%d", i)))
	}

	h.Render(w, r, "about", data)
}
