package config

// Config 配置主体
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	DB           DBConfig           `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Mongo        MongoConfig        `mapstructure:"mongo"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Logstash     LogstashConfig     `mapstructure:"logstash"`
	Contribution ContributionConfig `mapstructure:"contribution"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 用户库（身份信息）配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 贡献记录主存储配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Brokers    []string   `mapstructure:"brokers"`
	Sasl       SaslConfig `mapstructure:"sasl"`
	EventTopic string     `mapstructure:"event_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ContributionConfig 贡献子系统配置
type ContributionConfig struct {
	RateLimitPerMinute  int    `mapstructure:"rate_limit_per_minute"`
	StatsCacheTTL       int    `mapstructure:"stats_cache_ttl"`        // 秒
	LeaderboardCacheTTL int    `mapstructure:"leaderboard_cache_ttl"`  // 秒
	LeaderboardScanCap  int    `mapstructure:"leaderboard_scan_cap"`   // 分区榜单扫描上限
	Timezone            string `mapstructure:"timezone"`               // 周/月窗口参考时区
}
