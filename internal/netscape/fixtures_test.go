package netscape

import "strings"

const exportHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

func link(name, url string) string {
	return `<DT><A HREF="` + url + `" ADD_DATE="1700000000" ICON="data:image/png;base64,AAAA">` + name + "</A>\n"
}

func folder(name string, items ...string) string {
	return `<DT><H3 ADD_DATE="1700000000" LAST_MODIFIED="1700000001">` + name + "</H3>\n<DL><p>\n" +
		strings.Join(items, "") + "</DL><p>\n"
}

func toolbar(items ...string) string {
	return `<DT><H3 ADD_DATE="1700000000" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks bar</H3>` + "\n<DL><p>\n" +
		strings.Join(items, "") + "</DL><p>\n"
}

func export(items ...string) string {
	return exportHeader + "<DL><p>\n" + strings.Join(items, "") + "</DL><p>\n"
}

func names(nodes []*CategoryNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func siteNames(sites []Site) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Name)
	}
	return out
}
