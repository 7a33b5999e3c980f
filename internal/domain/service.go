package domain

type Specialization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Service struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // 服务时长（分钟）
	Price    int    `json:"price"`
}

// ServiceRelationship: 某个专长能够提供哪些服务（静态配置，核心只读）
type ServiceRelationship struct {
	SpecializationID int64   `json:"specializationID"`
	ServiceIDs       []int64 `json:"serviceIDs"`
}
