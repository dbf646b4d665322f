package tracks

import (
	"testing"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		role string
		want types.Track
	}{
		{"Engineering Manager", types.TrackManagement},
		{"Senior Software Engineer", types.TrackTechnical},
		{"Founder & CEO", types.TrackEntrepreneurial},
		{"Operations Specialist", types.TrackSpecialist},
		{"Tech Lead, Data Platform", types.TrackManagement},
		{"Startup Data Engineer", types.TrackEntrepreneurial},
		{"DEVOPS", types.TrackTechnical},
		{"Chief Marketing Officer", types.TrackManagement},
		{"مهندس برمجيات", types.TrackTechnical},
		{"مدير مشاريع", types.TrackManagement},
		{"", types.TrackSpecialist},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.role))
		})
	}
}
