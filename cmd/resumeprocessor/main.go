package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// 命令行参数定义
var (
	pdfFilePath = pflag.StringP("pdf", "p", "", "PDF简历文件路径 (必填)")
	configPath  = pflag.StringP("config", "c", "", "配置文件路径，为空时使用默认配置")
	maxLen      = pflag.Int("maxlen", 1000, "显示的文本最大长度，设为-1显示全部")
	command     = pflag.String("cmd", "parse", "执行的命令: extract=仅提取文本, parse=提取并解析为JSON")
	outputFile  = pflag.StringP("output", "o", "", "保存结果到文件")
)

func main() {
	pflag.Parse()

	if *pdfFilePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须提供PDF文件路径。使用 -p/--pdf 参数。")
		pflag.Usage()
		os.Exit(1)
	}

	var err error
	switch *command {
	case "extract":
		err = handleExtractCommand(*pdfFilePath)
	case "parse":
		err = handleParseCommand(*pdfFilePath)
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 '%s'。支持的命令: extract, parse\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
