// radar-view — терминальный вьюер артефакта: вкладки, теги, поиск,
// закладки и вырезки. Вся логика лежит в internal/view и
// internal/bookmark; здесь только ввод-вывод.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rixia6254/info-teacher-radar/internal/artifact"
	"github.com/rixia6254/info-teacher-radar/internal/bookmark"
	"github.com/rixia6254/info-teacher-radar/internal/config"
	"github.com/rixia6254/info-teacher-radar/internal/kv"
	"github.com/rixia6254/info-teacher-radar/internal/news"
	"github.com/rixia6254/info-teacher-radar/internal/view"
)

func main() {
	_ = godotenv.Load()
	envCfg := config.LoadEnvConfig()

	artifactPath := envCfg.ArtifactPath
	if artifactPath == "" {
		artifactPath = "data/artifact.json"
	}

	store := kv.NewFileStore(envCfg.DataDir)
	bookmarks := bookmark.NewStore(store)
	clips := bookmark.NewClipStore(store, nil)

	model := view.Model{Now: time.Now(), Bookmarks: bookmarks.Load()}

	// Недоступный артефакт — деградированное состояние, не падение:
	// закладки и вырезки остаются доступными.
	loaded, err := artifact.NewStore(artifactPath).Load()
	if err != nil {
		log.Printf("artifact unavailable: %v", err)
		fmt.Println("記事リストを読み込めませんでした（ブックマークとクリップは利用できます）")
	} else {
		model.Artifact = loaded
	}

	runREPL(os.Stdin, model, bookmarks, clips)
}

func runREPL(in *os.File, model view.Model, bookmarks *bookmark.Store, clips *bookmark.ClipStore) {
	st := view.NewState()
	visible := model.Visible(st)
	render(model, st, visible, clips)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "q", "quit":
			return
		case "tab":
			st = st.SelectTab(arg)
		case "tag":
			st = st.ToggleTag(arg)
		case "search":
			st = st.SetSearch(arg)
		case "sort":
			if arg == "time" {
				st = st.SetSort(view.SortByTime)
			} else {
				st = st.SetSort(view.SortByScore)
			}
		case "days":
			if n, err := strconv.Atoi(arg); err == nil {
				st = st.SetRetention(n)
			}
		case "clips":
			st = st.OpenClips()
		case "back":
			st = st.CloseClips()
		case "clip":
			handleClip(arg, clips)
		case "bm":
			if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(visible) {
				newState, on, err := bookmarks.Toggle(visible[n-1])
				if err != nil {
					fmt.Printf("ブックマークを保存できませんでした: %v\n", err)
					break
				}
				model.Bookmarks = newState
				if on {
					fmt.Println("ブックマークに追加しました")
				} else {
					fmt.Println("ブックマークを外しました")
				}
			}
		case "export":
			data, err := bookmarks.Export()
			if err != nil {
				fmt.Printf("エクスポートに失敗しました: %v\n", err)
				break
			}
			fmt.Println(data)
		case "import":
			data, err := os.ReadFile(arg)
			if err != nil {
				fmt.Printf("ファイルを読み込めませんでした: %v\n", err)
				break
			}
			newState, merged, err := bookmarks.Import(string(data))
			if err != nil {
				fmt.Printf("インポートできませんでした: %v\n", err)
				break
			}
			model.Bookmarks = newState
			fmt.Printf("%d件を取り込みました\n", merged)
		default:
			printHelp()
			continue
		}

		visible = model.Visible(st)
		render(model, st, visible, clips)
	}
}

func handleClip(arg string, clips *bookmark.ClipStore) {
	sub, rest, _ := strings.Cut(arg, " ")
	switch sub {
	case "add":
		url, memo, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if _, err := clips.Add(url, memo); err != nil {
			fmt.Printf("クリップを保存できませんでした: %v\n", err)
		}
	case "rm":
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
			if _, err := clips.Remove(n - 1); err != nil {
				fmt.Printf("クリップを削除できませんでした: %v\n", err)
			}
		}
	}
}

func render(model view.Model, st view.State, visible []news.Item, clips *bookmark.ClipStore) {
	if st.ClipsOpen {
		fmt.Println("--- クリップ ---")
		for i, clip := range clips.Load() {
			fmt.Printf("%2d. %s  %s  (%s)\n", i+1, clip.URL, clip.Memo, clip.TS.Format("01/02"))
		}
		fmt.Println("(back で元のタブに戻る)")
		return
	}

	fmt.Printf("--- %s", st.ActiveTab)
	if st.ActiveTag != "" {
		fmt.Printf(" / #%s", st.ActiveTag)
	}
	if st.SearchText != "" {
		fmt.Printf(" / %q", st.SearchText)
	}
	fmt.Printf(" --- %d件\n", len(visible))

	for i, item := range visible {
		marker := " "
		if _, ok := model.Bookmarks.Map[item.ID]; ok {
			marker = "★"
		}
		fmt.Printf("%2d.%s [%2d] %s\n      %s | %s | %s\n",
			i+1, marker, item.Score, item.Title,
			item.Source, strings.Join(item.Tags, ","), item.PublishedAt.Format("2006-01-02"))
	}

	if facets := model.Facets(st); len(facets) > 0 {
		parts := make([]string, 0, len(facets))
		for _, f := range facets {
			parts = append(parts, fmt.Sprintf("#%s(%d)", f.Tag, f.Count))
		}
		fmt.Println("tags:", strings.Join(parts, " "))
	}
}

func printHelp() {
	fmt.Println(`commands:
  tab <today|bookmarks|mext|ict|subject|exam|ai_edu|ai_news>
  tag <タグ> / search <語> / sort <score|time> / days <N>
  bm <番号>  закладка по номеру строки
  clips / back / clip add <url> <メモ> / clip rm <番号>
  export / import <файл> / quit`)
}
