package config

import "time"

// Base application details
const AppName = "zim"
const ConfigDirName = "zim"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "zim.log"
const Version = "0.1.0"

// UI Layout
const StatusBarHeight = 1
const TabBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
const DefaultMaxHistory = 1000
const DefaultPollIntervalMs = 100
