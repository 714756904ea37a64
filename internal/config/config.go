package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Slug     SlugConfig     `mapstructure:"slug"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name string `mapstructure:"name"`
	Mode string `mapstructure:"mode"`
}

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
	case DriverSQLite:
		// database 字段即文件路径，外键级联依赖 foreign_keys 开关
		return c.Database + "?_pragma=foreign_keys(1)"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	}
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// SlugConfig slug 生成配置
type SlugConfig struct {
	// RetryAttempts 文章slug唯一冲突时整体重试的次数，1 表示不重试
	RetryAttempts int `mapstructure:"retry_attempts"`
	RetryDelayMs  int `mapstructure:"retry_delay_ms"`
}

// RetryDelay 重试间隔
func (c SlugConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

var (
	// current 全局配置实例，热更新在 fsnotify 协程中写入
	current atomic.Pointer[Config]
	// 配置Viper实例
	viperInstance *viper.Viper
	watchOnce     sync.Once
)

// Init 初始化配置
func Init(configPath string) error {
	// 先加载 .env 到环境变量，文件不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("警告: 无法加载 .env 文件: %v", err)
	}

	v := newViper()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")

	config, err := read(v)
	if err != nil {
		return err
	}

	current.Store(config)
	viperInstance = v
	return nil
}

// Load 从指定文件加载配置，不修改全局实例
func Load(file string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(file)
	return read(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "blog-core")
	v.SetDefault("app.mode", "release")
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.log_level", "error")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.stdout", true)
	v.SetDefault("slug.retry_attempts", 3)
	v.SetDefault("slug.retry_delay_ms", 10)
}

func read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Slug.RetryAttempts < 1 {
		return fmt.Errorf("slug.retry_attempts 必须大于等于1，当前为 %d", c.Slug.RetryAttempts)
	}
	return nil
}

// Watch 监听配置文件变化，重新解析成功后回调
func Watch(onChange func(*Config)) {
	if viperInstance == nil {
		return
	}
	watchOnce.Do(func() {
		viperInstance.OnConfigChange(func(in fsnotify.Event) {
			if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
				return
			}
			config, err := reload(viperInstance)
			if err != nil {
				log.Printf("重新加载配置失败，保留原配置: %v", err)
				return
			}
			if onChange != nil {
				onChange(config)
			}
		})
		viperInstance.WatchConfig()
	})
}

// reload 解析并校验 viper 中已读取的新内容，校验通过才替换全局配置
func reload(v *viper.Viper) (*Config, error) {
	config, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(config)
	return config, nil
}

// GetConfig 获取全局配置，未初始化时返回 nil
func GetConfig() *Config {
	return current.Load()
}
