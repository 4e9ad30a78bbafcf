// Package config loads recetas configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. The TOML file: the given path, or ~/.config/recetas/config.toml
//  3. A .env file in the working directory, which never replaces
//     variables already present in the environment
//  4. Environment variables
//
// Missing files are not an error and blank values fall back to defaults.
// Tilde expansion is applied to every path.
//
// # TOML Format
//
//	api_base_url = "https://www.themealdb.com/api/json/v1/1"
//	request_timeout = "8s"
//	storage = "file"            # or "sqlite"
//	storage_path = "~/.local/share/recetas/storage.json"
//	log_level = "info"
//	log_format = "json"         # or "console"
//	log_path = "~/.local/state/recetas/recetas.log"  # or stdout, stderr, discard
//	author_name = ""
//	author_url = ""
//
// # Environment
//
//	RECETAS_API_BASE_URL      (also NEXT_PUBLIC_API_BASE_URL)
//	RECETAS_REQUEST_TIMEOUT
//	RECETAS_STORAGE
//	RECETAS_STORAGE_PATH
//	RECETAS_LOG_LEVEL
//	RECETAS_LOG_FORMAT
//	RECETAS_LOG_PATH
//	RECETAS_AUTHOR_NAME       (also NEXT_PUBLIC_PORTF_NAME)
//	RECETAS_AUTHOR_URL        (also NEXT_PUBLIC_PORTF_URL)
//
// When both names of a pair are set the RECETAS_ one wins.
package config
