package models

// Choice is a value/label pair offered to editing clients.
type Choice struct {
	Value interface{} `json:"value"`
	Label string      `json:"label"`
}

// Options enumerates the choice fields used by the private API.
type Options struct {
	NewsStatus    []Choice `json:"NEWS_STATUS"`
	TopNews       []Choice `json:"TOP_NEWS"`
	TitleTypes    []Choice `json:"TITLE_TYPES"`
	ContentTypes  []Choice `json:"CONTENT_TYPES"`
	StoryStatuses []Choice `json:"STORY_STATUSES"`
	Roles         []Choice `json:"ROLES"`
}

func BuildOptions() Options {
	opts := Options{
		NewsStatus: []Choice{
			{Value: StatusClosed, Label: "Closed"},
			{Value: StatusStaffOnly, Label: "Staff only"},
			{Value: StatusOpen, Label: "Open"},
		},
		TopNews: []Choice{
			{Value: TopNewsLeft, Label: "Top Left"},
			{Value: TopNewsRight, Label: "Top Right"},
		},
		TitleTypes: []Choice{
			{Value: TitlePlain, Label: "Plain"},
			{Value: TitleBold, Label: "Bold"},
			{Value: TitleRed, Label: "Red"},
		},
		StoryStatuses: []Choice{
			{Value: StoryPending, Label: "Pending"},
			{Value: StoryActive, Label: "Active"},
			{Value: StoryArchived, Label: "Archived"},
		},
	}
	for _, ct := range ContentTypes() {
		opts.ContentTypes = append(opts.ContentTypes, Choice{Value: ct, Label: string(ct)})
	}
	for _, r := range Roles() {
		opts.Roles = append(opts.Roles, Choice{Value: r, Label: r.String()})
	}
	return opts
}
