// Package config loads opflow settings with koanf.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults
//  2. opflow.yaml (or opflow.yml) in the working directory, or an explicit file
//  3. OPFLOW_* environment variables (OPFLOW_GOLDEN_DIR -> golden_dir)
//  4. command-line flags that were explicitly set (--golden-dir -> golden_dir)
package config
