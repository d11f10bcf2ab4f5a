package domain

import "time"

type SystemStatus struct {
	TotalWorkers      int       `json:"total_workers"`
	TotalDocuments    int       `json:"total_documents"`
	TotalPrograms     int       `json:"total_programs"`
	TotalCriteria     int       `json:"total_criteria"`
	DocumentsThisYear int       `json:"documents_this_year"`
	DatabaseHealthy   bool      `json:"database_healthy"`
	RedisHealthy      bool      `json:"redis_healthy"`
	WSClients         int       `json:"ws_clients"`
	DBPool            PoolUsage `json:"db_pool"`
	ServerTime        time.Time `json:"server_time"`
}

type PoolUsage struct {
	Total    int32 `json:"total"`
	Idle     int32 `json:"idle"`
	Acquired int32 `json:"acquired"`
	Max      int32 `json:"max"`
}
