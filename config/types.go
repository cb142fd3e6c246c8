package config

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// OCRConfig OCR服务配置
type OCRConfig struct {
	Provider       string `mapstructure:"provider"` // mistral/docconv
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"` // 例如 mistral-ocr-latest
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	// 是否要求接口返回图片的base64内容
	IncludeImageBase64 bool `mapstructure:"include_image_base64"`
}

// CacheConfig OCR结果磁盘缓存配置
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`
	Enabled    bool   `mapstructure:"enabled"`
	MaxAgeDays int    `mapstructure:"max_age_days"` // 超期的缓存文件由定时任务清理
}

// EmbeddingConfig 向量模型配置
type EmbeddingConfig struct {
	Server    string `mapstructure:"server"` // openai/ollama
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
}

// MinioConfig Minio配置
type MinioConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
}

// MilvusConfig Milvus向量数据库配置
type MilvusConfig struct {
	Address         string `mapstructure:"address"`
	CollectionName  string `mapstructure:"collection_name"`
	VectorDimension int    `mapstructure:"vector_dimension"`
	IndexType       string `mapstructure:"index_type"`
	MetricType      string `mapstructure:"metric_type"`
	Nlist           int    `mapstructure:"nlist"`
	// 搜索参数
	Nprobe int `mapstructure:"nprobe"`
}

// GetMetricType 获取度量类型
func (m *MilvusConfig) GetMetricType() entity.MetricType {
	var metricType entity.MetricType
	switch m.MetricType {
	case "L2":
		metricType = entity.L2 // 欧几里得距离
	case "IP":
		metricType = entity.IP // 内积距离，适合已归一化的向量
	default:
		metricType = entity.COSINE // 余弦相似度，适合文本语义搜索
	}
	return metricType
}

// GetMilvusIndex 根据配置构建索引
func (m *MilvusConfig) GetMilvusIndex() (entity.Index, error) {
	metricType := m.GetMetricType()

	var (
		idx entity.Index
		err error
	)
	if m.Nlist <= 0 {
		m.Nlist = 128 // 为空，取默认值
	}

	switch m.IndexType {
	case "IVF_FLAT":
		// 倒排文件索引 + 原始向量存储，精度高但内存占用较大
		idx, err = entity.NewIndexIvfFlat(metricType, m.Nlist)
	case "IVF_SQ8":
		// 标量量化压缩存储，比IVF_FLAT节省内存，轻微精度损失
		idx, err = entity.NewIndexIvfSQ8(metricType, m.Nlist)
	case "HNSW":
		// 层次可导航小世界图索引，高效且精确但内存占用大
		idx, err = entity.NewIndexHNSW(metricType, 8, 40) // M=8, efConstruction=40
	default:
		idx, err = entity.NewIndexIvfFlat(metricType, m.Nlist)
	}
	return idx, err
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string      `mapstructure:"type"` // local/oss/minio
	Local LocalConfig `mapstructure:"local"`
	OSS   OSSConfig   `mapstructure:"oss"`
	Minio MinioConfig `mapstructure:"minio"`
}

// LocalConfig 本地存储配置
type LocalConfig struct {
	BaseDir string `mapstructure:"base_dir"` // 本地存储根目录（如 /data/storage）
}

// OSSConfig OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
}

// CORSConfig CORS配置
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           string   `mapstructure:"max_age"` // 使用字符串表示时间，便于配置
}

// RAGConfig 文本切分配置
type RAGConfig struct {
	ChunkSize   int `mapstructure:"chunk_size"`
	OverlapSize int `mapstructure:"overlap_size"`
}

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	CORS      CORSConfig      `mapstructure:"cors"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RAG       RAGConfig       `mapstructure:"rag"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Milvus    MilvusConfig    `mapstructure:"milvus"`
}
