package cli

import "github.com/odysseus0/rssfeed/internal/model"

type OutputFormat = model.OutputFormat
type Article = model.Article
type Result = model.Result
type Report = model.Report
type FeedInfo = model.FeedInfo

const (
	OutputText  = model.OutputText
	OutputTable = model.OutputTable
	OutputJSON  = model.OutputJSON
)
