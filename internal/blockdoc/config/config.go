// Управление конфигурацией приложения из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Маскировка секретных значений в логах.
//   - Обработка ошибок при парсинге URL.
//   - Предоставление значений по умолчанию и ограничение диапазонов (например, DocumentTTL).
package config

import (
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strings"
)

type Config struct {
	ListenAddress string `env:"LISTEN_ADDRESS"`

	// Время жизни неактивной сессии документа в минутах
	DocumentTTL int `env:"DOCUMENT_TTL"`

	// Максимальный размер тела документа в байтах
	MaxBodySize int `env:"MAX_BODY_SIZE"`

	FormulaURLRaw string `env:"FORMULA_URL"`
	FormulaURL    *url.URL

	FormulaToken string `env:"FORMULA_TOKEN"`

	Demo          bool `env:"DEMO"`
	MetricsEnable bool `env:"METRICS_ENABLE"`
}

// ReadConfig загружает конфигурацию приложения из переменных окружения и выполняет валидацию. Возвращает структуру Config с загруженными параметрами. Типы данных преобразуются из строк, секретные значения маскируются в логах, а для отсутствующих параметров подставляются значения по умолчанию. Если FORMULA_URL задан, но не парсится, приложение завершает работу с ошибкой.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	if config.ListenAddress == "" {
		config.ListenAddress = ":8080"
	}

	if config.FormulaURLRaw != "" {
		var err error
		config.FormulaURL, err = url.Parse(config.FormulaURLRaw)
		if err != nil {
			slog.Error("FORMULA_URL incorrect", "err", err)
			os.Exit(1)
		}
	}

	if config.DocumentTTL <= 0 || config.DocumentTTL > 1440 {
		config.DocumentTTL = 30
	}

	if config.MaxBodySize <= 0 {
		config.MaxBodySize = 2 << 20
	}

	return config
}

// Присваивает полям в переданной структуре значения переменных. Название переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if !Exist(fEnvTag) {
			continue
		}

		logValue := GetEnv(fEnvTag)
		if logValue == "" {
			continue
		}

		// Secure passwords in log
		if strings.Contains(strings.ToLower(fName), "pass") || strings.Contains(strings.ToLower(fName), "secret") || strings.Contains(strings.ToLower(fName), "token") {
			pass := strings.Split(GetEnv(fEnvTag), "")
			logValue = pass[0]
			for i := 1; i < len(pass)-1; i++ {
				logValue += "*"
			}
			logValue += pass[len(pass)-1]

		}
		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(GetEnv(fEnvTag))
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}
