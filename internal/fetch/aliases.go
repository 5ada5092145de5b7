package fetch

import (
	"github.com/odysseus0/rssfeed/internal/config"
	"github.com/odysseus0/rssfeed/internal/model"
)

type Config = config.Config
type Article = model.Article
type Result = model.Result
type Report = model.Report
type FeedInfo = model.FeedInfo
