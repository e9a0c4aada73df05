package service

import (
	"time"

	"github.com/vinothini113/spa-application/internal/constants"
)

// Record 按角色下发的数据记录（演示数据，不落盘）
type Record struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Access       string    `json:"access"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	LastModified time.Time `json:"lastModified"`
	Size         string    `json:"size"`
}

// RecordService 角色记录目录
type RecordService struct{}

// NewRecordService 创建记录服务
func NewRecordService() *RecordService {
	return &RecordService{}
}

// ForRole 返回指定角色可见的记录列表；未知角色按普通用户处理
func (s *RecordService) ForRole(role string) []Record {
	now := time.Now()
	if role == constants.RoleAdmin {
		return []Record{
			{1, "All User Data", "Full", "Complete system access with user management capabilities", "System", now, "2.5 MB"},
			{2, "System Logs", "Read/Write", "System administration logs and monitoring data", "Logs", now, "15.2 MB"},
			{3, "User Management", "Full", "User account management and permissions", "Administration", now, "8.7 MB"},
			{4, "Database Backups", "Full", "System database backups and recovery", "Backup", now, "45.3 MB"},
			{5, "Security Reports", "Full", "Security audit reports and compliance data", "Security", now, "12.1 MB"},
		}
	}
	return []Record{
		{1, "Personal Data", "Read Only", "Personal information and profile data", "Personal", now, "0.5 MB"},
		{2, "Reports", "Read Only", "Generated reports and analytics", "Reports", now, "3.2 MB"},
		{3, "Settings", "Limited", "Personal settings and preferences", "Settings", now, "0.1 MB"},
		{4, "Documents", "Read/Write", "Personal documents and files", "Documents", now, "1.8 MB"},
	}
}
