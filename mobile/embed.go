//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// make prepare-mobile 会把根目录的 data/*.yaml 复制到 mobile/data/，
// 因为 //go:embed 只能嵌入当前包目录下的文件。
package mobile

import "embed"

//go:embed data/*.yaml
var dataFS embed.FS
