package repository

import (
	"testing"

	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
)

func TestBuildJobList(t *testing.T) {
	jobs := []*models.AdJob{{}, {}}
	pq := &utils.Pagination{Page: 1, Size: 10}

	list := buildJobList(jobs, 25, pq)
	if list.TotalCount != 25 {
		t.Errorf("TotalCount = %d, want the row count 25", list.TotalCount)
	}
	if list.Page != 1 || list.PageSize != 10 {
		t.Errorf("Page = %d, PageSize = %d", list.Page, list.PageSize)
	}
	if !list.HasMore {
		t.Error("HasMore should be true with 25 rows on page 1 of 10")
	}

	last := buildJobList(jobs, 25, &utils.Pagination{Page: 3, Size: 10})
	if last.HasMore {
		t.Error("HasMore should be false on the last page")
	}

	empty := buildJobList(make([]*models.AdJob, 0), 0, pq)
	if empty.TotalCount != 0 || empty.HasMore {
		t.Errorf("empty list: TotalCount = %d, HasMore = %v", empty.TotalCount, empty.HasMore)
	}
	if empty.Jobs == nil {
		t.Error("Jobs must be an empty slice, not nil")
	}
}
