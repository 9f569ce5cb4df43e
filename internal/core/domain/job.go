package domain

// JobItem is the summary record returned by a job search.
type JobItem struct {
	ID             int    `json:"id"`
	BadgeLetters   string `json:"badgeLetters"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	DaysAgo        int    `json:"daysAgo"`
	RelevanceScore int    `json:"relevanceScore"`
}

// JobItemExpanded is a JobItem together with its full description fields.
type JobItemExpanded struct {
	JobItem
	Description    string   `json:"description"`
	Qualifications []string `json:"qualifications"`
	Reviews        []string `json:"reviews"`
	Duration       string   `json:"duration"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	CoverImgURL    string   `json:"coverImgURL"`
	CompanyURL     string   `json:"companyURL"`
}

// JobItemResponse is the body of GET {base}/{id}.
type JobItemResponse struct {
	Public  bool            `json:"public"`
	JobItem JobItemExpanded `json:"jobItem"`
}

// JobItemsResponse is the body of GET {base}?search={text}.
type JobItemsResponse struct {
	Public   bool      `json:"public"`
	Sorted   bool      `json:"sorted"`
	JobItems []JobItem `json:"jobItems"`
}

// ValidJobID reports whether id may be sent to the job API.
func ValidJobID(id int) bool {
	return id > 0
}
