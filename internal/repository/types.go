package repository

import "time"

// CustomerListFilter 查询顾客列表的过滤条件
type CustomerListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	Search     string
	MinSpend   *string
	OrderedFrom *time.Time
	OrderedTo   *time.Time
}

// CampaignListFilter 查询抽奖活动列表的过滤条件
type CampaignListFilter struct {
	Page        int
	PageSize    int
	StoreID     uint
	Search      string
	OnlyRunning bool
	WithPrizes  bool
}

// EntryListFilter 查询抽奖记录列表的过滤条件
type EntryListFilter struct {
	Page       int
	PageSize   int
	CampaignID uint
	CustomerID uint
}

// FlowListFilter 查询跟进流程列表的过滤条件
type FlowListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	OnlyActive bool
	WithSteps  bool
}

// JobListFilter 查询消息任务列表的过滤条件
type JobListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	CustomerID uint
	Status     string
	FlowID     uint
}
