/*
NAME
  watch.go

DESCRIPTION
  watch.go implements the "watch" subcommand: watches a directory for new
  WAV/FLAC files and decodes each one as it lands, logging the recovered
  message or the decode failure.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"flag"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/audioio"
	"github.com/ausocean/audiowm/codec/watermark"
)

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dir := fs.String("dir", "", "directory to watch for new audio files")
	sampleRate := fs.Int("rate", watermark.DefaultSampleRate, "sample rate used at encode time")
	frameMs := fs.Int("frame-ms", watermark.DefaultFrameMs, "frame duration used at encode time")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return errors.New("watch: -dir is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch: failed to create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(*dir); err != nil {
		return errors.Wrap(err, "watch: failed to watch directory")
	}

	p := watermark.Params{SampleRate: *sampleRate, FrameMs: *frameMs}.WithDefaults()
	log.Info("watching for new audio files", "dir", *dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isAudioFile(event.Name) {
				continue
			}
			decodeWatched(p, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err.Error())
		}
	}
}

func isAudioFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".flac":
		return true
	default:
		return false
	}
}

func decodeWatched(p watermark.Params, path string) {
	audio, err := audioio.Load(path)
	if err != nil {
		log.Warning("failed to load watched file", "file", path, "error", err.Error())
		return
	}

	msg, diag, err := p.Decode(audio.Samples)
	if err != nil {
		log.Warning("failed to decode watched file", "file", path, "error", err.Error(),
			"threshold", diag.Threshold, "inverted", diag.Inverted)
		return
	}
	log.Info("decoded watched file", "file", path, "message", string(msg))
}
