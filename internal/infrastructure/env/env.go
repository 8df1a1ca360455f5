package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Options struct {
	// Dir: каталог, в котором ищутся .env и .env.<APP_ENV>.
	Dir string
	// Override перезаписывает уже выставленные переменные окружения
	// значениями из файлов.
	Override bool
}

type EnvService struct {
	lookup func(string) (string, bool)
	loaded []string
	appEnv string
}

// NewEnvService подгружает .env (секреты) и .env.<APP_ENV> (настройки окружения).
// Отсутствие файлов не является ошибкой: в CI переменные приходят из окружения.
// Файл, который есть, но не разбирается, является ошибкой.
func NewEnvService(opts Options) (*EnvService, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	svc := &EnvService{lookup: os.LookupEnv, appEnv: appEnv}

	for _, name := range []string{".env", fmt.Sprintf(".env.%s", appEnv)} {
		path := filepath.Join(opts.Dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var err error
		if opts.Override {
			err = godotenv.Overload(path)
		} else {
			err = godotenv.Load(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		svc.loaded = append(svc.loaded, path)
	}

	return svc, nil
}

// NewEnvServiceFromMap не трогает окружение процесса.
func NewEnvServiceFromMap(values map[string]string) *EnvService {
	return &EnvService{
		lookup: func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		},
		appEnv: values["APP_ENV"],
	}
}

// Loaded возвращает пути реально загруженных файлов.
func (e *EnvService) Loaded() []string {
	return e.loaded
}

func (e *EnvService) AppEnv() string {
	return e.appEnv
}

func (e *EnvService) Get(key string) string {
	val, _ := e.lookup(key)
	return val
}

func (e *EnvService) GetWithDefault(key, defaultValue string) string {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
