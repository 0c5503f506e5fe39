package ingest

import "github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"

func parsePlatforms(r *reader, reg *registry.Registry) error {
	for {
		start, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return nil
			}
			return err
		}
		if start.Name.Local != "platform" {
			if err := r.skip(); err != nil {
				return err
			}
			continue
		}
		name := findAttr("name", start.Attr)
		protect := findAttr("protect", start.Attr)
		reg.Platforms[name] = &registry.Platform{Name: name, Protect: protect}
		_ = line
		if err := r.elementEnd(); err != nil {
			return err
		}
	}
}

func parseTags(r *reader, reg *registry.Registry) error {
	for {
		start, _, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return nil
			}
			return err
		}
		if start.Name.Local != "tag" {
			if err := r.skip(); err != nil {
				return err
			}
			continue
		}
		name := findAttr("name", start.Attr)
		author := findAttr("author", start.Attr)
		reg.Tags[name] = &registry.Tag{Name: name, Author: author}
		if err := r.elementEnd(); err != nil {
			return err
		}
	}
}
