package dao

import (
	"errors"
	"fmt"
	"strings"

	"paper-cloud/internal/model"

	"gorm.io/gorm"
)

// PaperDao 定义了论文记录操作的接口
type PaperDao interface {
	CreatePaper(paper *model.Paper) error
	GetPaperByID(id string) (*model.Paper, error)
	UpdatePaper(paper *model.Paper) error
	UpdateStatus(id string, status int) error
	DeletePaper(id string) error
	ListPapers(userID uint, page int, pageSize int, sort string) ([]model.Paper, error)
	CountPapers(userID uint) (int64, error)
	GetPapersByKeyword(userID uint, key string, page int, pageSize int, sort string) ([]model.Paper, error)
	CountPapersByKeyword(key string, userID uint) (int64, error)
}

// paperDao 实现了PaperDao接口
type paperDao struct {
	db *gorm.DB
}

// NewPaperDao 创建并返回一个新的PaperDao实例
func NewPaperDao(db *gorm.DB) PaperDao {
	return &paperDao{db: db}
}

// CreatePaper 创建一条论文记录
func (pd *paperDao) CreatePaper(paper *model.Paper) error {
	if pd.db == nil {
		return errors.New("数据库未初始化")
	}
	return pd.db.Create(paper).Error
}

// GetPaperByID 根据ID获取论文记录
func (pd *paperDao) GetPaperByID(id string) (*model.Paper, error) {
	var paper model.Paper
	result := pd.db.Where("id = ?", id).First(&paper)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &paper, nil
}

// UpdatePaper 更新论文记录
func (pd *paperDao) UpdatePaper(paper *model.Paper) error {
	if pd.db == nil {
		return errors.New("数据库未初始化")
	}
	return pd.db.Save(paper).Error
}

// UpdateStatus 只更新处理状态
func (pd *paperDao) UpdateStatus(id string, status int) error {
	return pd.db.Model(&model.Paper{}).Where("id = ?", id).Update("status", status).Error
}

// DeletePaper 根据ID删除论文记录
func (pd *paperDao) DeletePaper(id string) error {
	if err := pd.db.Where("id = ?", id).Delete(&model.Paper{}).Error; err != nil {
		return err
	}
	return nil
}

// applySort 解析"field:order,field:order"形式的排序参数
func applySort(query *gorm.DB, sort string) *gorm.DB {
	sortClauses := strings.Split(sort, ",")
	for _, clause := range sortClauses {
		parts := strings.Split(clause, ":")
		if len(parts) != 2 {
			continue
		}
		field, order := parts[0], parts[1]
		query = query.Order(fmt.Sprintf("%s %s", field, order))
	}
	return query
}

// ListPapers 按排序和分页参数列出论文
func (pd *paperDao) ListPapers(userID uint, page int, pageSize int, sort string) ([]model.Paper, error) {
	var papers []model.Paper
	query := pd.db.Model(&model.Paper{}).Where("user_id = ?", userID)
	query = applySort(query, sort)

	// 处理分页
	offset := (page - 1) * pageSize
	query = query.Offset(offset).Limit(pageSize)

	if err := query.Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

// CountPapers 统计用户的论文总数
func (pd *paperDao) CountPapers(userID uint) (int64, error) {
	var total int64
	if err := pd.db.Model(&model.Paper{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetPapersByKeyword 按标题或文件名关键词搜索
func (pd *paperDao) GetPapersByKeyword(userID uint, key string, page int, pageSize int, sort string) ([]model.Paper, error) {
	var papers []model.Paper
	query := pd.db.Model(&model.Paper{}).
		Where("user_id = ?", userID).
		Where("title LIKE ? OR file_name LIKE ?", "%"+key+"%", "%"+key+"%")
	query = applySort(query, sort)

	offset := (page - 1) * pageSize
	query = query.Offset(offset).Limit(pageSize)

	if err := query.Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func (pd *paperDao) CountPapersByKeyword(key string, userID uint) (int64, error) {
	var total int64
	query := pd.db.Model(&model.Paper{}).
		Where("user_id = ?", userID).
		Where("title LIKE ? OR file_name LIKE ?", "%"+key+"%", "%"+key+"%")
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
