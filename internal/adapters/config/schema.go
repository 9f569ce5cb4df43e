package config

// Configfile is the structure of jobsync.yaml.
// Durations are Go duration strings such as "500ms" or "1h".
type Configfile struct {
	API     APIDTO     `yaml:"api"`
	Cache   CacheDTO   `yaml:"cache"`
	Search  SearchDTO  `yaml:"search"`
	Storage StorageDTO `yaml:"storage"`
	Log     LogDTO     `yaml:"log"`
}

// APIDTO configures the job API client.
type APIDTO struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// CacheDTO configures the query caches.
type CacheDTO struct {
	StaleTime string `yaml:"stale_time"`
}

// SearchDTO configures search input and listing.
type SearchDTO struct {
	Debounce string `yaml:"debounce"`
	PageSize int    `yaml:"page_size"`
}

// StorageDTO configures bookmark persistence.
type StorageDTO struct {
	Backend      string `yaml:"backend"`
	Dir          string `yaml:"dir"`
	RedisURL     string `yaml:"redis_url"`
	BookmarksKey string `yaml:"bookmarks_key"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
