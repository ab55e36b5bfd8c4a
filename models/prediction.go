package models

// PredictionInput is what the user submits through the form, the JSON API or
// the CLI.
type PredictionInput struct {
	Likes        int64  `form:"likes" json:"likes" binding:"min=0"`
	Comments     int64  `form:"comments" json:"comments" binding:"min=0"`
	Category     string `form:"category" json:"category" binding:"required"`
	ChannelTitle string `form:"channel_title" json:"channel_title"`
	PublishHour  int    `form:"publish_hour" json:"publish_hour" binding:"min=0,max=23"`
	DayOfWeek    int    `form:"day_of_week" json:"day_of_week" binding:"min=0,max=6"`
}

// DefaultInput holds the values the form starts with.
func DefaultInput() PredictionInput {
	return PredictionInput{
		Likes:        1000,
		Comments:     50,
		Category:     "Film & Animation",
		ChannelTitle: "Example Channel",
		PublishHour:  14,
		DayOfWeek:    0,
	}
}

// PredictionRequest is the fixed-schema record handed to the model. It is built
// fresh for every request and never stored.
type PredictionRequest struct {
	Likes          int64   `json:"likes"`
	CommentCount   int64   `json:"comment_count"`
	CategoryID     int     `json:"category_id"`
	ChannelTitle   string  `json:"channel_title"`
	PublishHour    int     `json:"publish_hour"`
	DayOfWeek      int     `json:"day_of_week"`
	EngagementRate float64 `json:"engagement_rate"`
}

// Row returns the record's values in model column order.
func (r PredictionRequest) Row() []any {
	return []any{
		r.Likes,
		r.CommentCount,
		r.CategoryID,
		r.ChannelTitle,
		r.PublishHour,
		r.DayOfWeek,
		r.EngagementRate,
	}
}

type Summary struct {
	Likes          string `json:"likes"`
	Comments       string `json:"comments"`
	EngagementRate string `json:"engagement_rate"`
	Category       string `json:"category"`
	CategoryID     int    `json:"category_id"`
	ChannelTitle   string `json:"channel_title"`
	PublishTime    string `json:"publish_time"`
	Day            string `json:"day"`
	DayShort       string `json:"day_short"`
}

type PredictionResult struct {
	ID             string  `json:"id"`
	Model          string  `json:"model"`
	EstimatedViews int64   `json:"estimated_views"`
	FormattedViews string  `json:"formatted_views"`
	RangeLow       int64   `json:"range_low"`
	RangeHigh      int64   `json:"range_high"`
	TimingLabel    string  `json:"timing_label"`
	Insight        string  `json:"insight"`
	EngagementRate float64 `json:"engagement_rate"`
	Summary        Summary `json:"summary"`
}
