// Генерация документации об ошибках API в формате Markdown.
// Анализирует файл с определениями ошибок и создает Markdown-документ с таблицей, содержащей коды ошибок, HTTP-коды, сообщения и переводы на русский язык.
//
// Основные возможности:
//   - Чтение файла Go с определениями ошибок.
//   - Извлечение информации об ошибках из определения.
//   - Генерация Markdown-таблицы с информацией об ошибках.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"net/http"
	"os"
	"strings"

	md "github.com/nao1215/markdown"
)

func main() {
	errorsFile := flag.String("src", "internal/blockdoc/apierrors/apierrors.go", "Path of apierrors.go")
	outputMd := flag.String("out", "api_errors.md", "Path to output md")
	flag.Parse()

	slog.Info("Generate api errors docs", "src", *errorsFile, "out", *outputMd)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, *errorsFile, nil, 0)
	if err != nil {
		panic(err)
	}

	rows := getRows(f)

	ff, err := os.Create(*outputMd)
	if err != nil {
		slog.Error("Create output file", "err", err)
		os.Exit(1)
	}
	defer ff.Close()

	if err := md.NewMarkdown(ff).
		H1("Перечень кодов ошибок").
		PlainText("Данный раздел посвящен описанию возможных ошибок от сервера.").
		CustomTable(md.TableSet{
			Header: []string{"Код", "HTTP код", "Сообщение", "Сообщение на русском"},
			Rows:   rows,
		}, md.TableOptions{
			AutoWrapText: false,
		}).Build(); err != nil {
		slog.Error("Generate docs fail", "err", err)
	} else {
		slog.Info("Docs generated")
	}
}

// Функция парсит определения ошибок из файла AST и возвращает строки для таблицы Markdown.
func getRows(f *ast.File) [][]string {
	var rows [][]string
	for _, d := range f.Decls {
		decl, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range decl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, id := range valueSpec.Names {
				definedError, ok := id.Obj.Decl.(*ast.ValueSpec).Values[0].(*ast.CompositeLit)
				if !ok {
					continue
				}
				row := make([]string, 4)
				for _, v := range definedError.Elts {
					param, ok := v.(*ast.KeyValueExpr)
					if !ok {
						continue
					}
					switch fmt.Sprint(param.Key) {
					case "Code":
						row[0] = md.Bold(param.Value.(*ast.BasicLit).Value)
					case "StatusCode":
						statusName := param.Value.(*ast.SelectorExpr).Sel.Name
						row[1] = fmt.Sprintf("%d %s", statusCode(statusName), md.Italic(statusName))
					case "Err":
						row[2] = md.Code(strings.Trim(param.Value.(*ast.BasicLit).Value, "\""))
					case "RuErr":
						row[3] = md.Code(strings.Trim(param.Value.(*ast.BasicLit).Value, "\""))
					}
				}
				if row[1] == "" {
					row[1] = fmt.Sprintf("%d %s", http.StatusBadRequest, md.Italic("StatusBadRequest"))
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// statusCode сопоставляет имя константы net/http с числовым HTTP кодом,
// перебирая стандартные коды по их текстам.
func statusCode(statusName string) int {
	// Нестандартные имена констант
	switch statusName {
	case "StatusNonAuthoritativeInfo":
		return http.StatusNonAuthoritativeInfo
	case "StatusRequestEntityTooLarge":
		return http.StatusRequestEntityTooLarge
	case "StatusRequestURITooLong":
		return http.StatusRequestURITooLong
	case "StatusTeapot":
		return http.StatusTeapot
	}

	name := strings.TrimPrefix(statusName, "Status")
	for code := 100; code < 600; code++ {
		text := http.StatusText(code)
		if text == "" {
			continue
		}
		text = strings.ReplaceAll(text, " ", "")
		text = strings.ReplaceAll(text, "-", "")
		if text == name {
			return code
		}
	}
	return http.StatusBadRequest
}
