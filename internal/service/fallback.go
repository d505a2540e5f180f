package service

import "github.com/example/synapz/pkg/models"

// fallbackFacts seed an empty catalog when no other source is available
var fallbackFacts = []models.FactInput{
	{Title: "Human Brain Neurons", Category: "Science", Source: "Neuroscience Research",
		Text: "The human brain contains approximately 86 billion neurons, each forming thousands of connections with other neurons. This creates trillions of neural connections that enable complex thought, memory, and consciousness."},
	{Title: "Ancient Library of Alexandria", Category: "History", Source: "Historical Records",
		Text: "The Library of Alexandria, one of the largest and most significant libraries of the ancient world, contained an estimated 400,000 scrolls at its peak. It was a major center of scholarship in the ancient world."},
	{Title: "Deep Ocean Pressure", Category: "Nature", Source: "Oceanography",
		Text: "At the bottom of the Mariana Trench, the deepest part of the ocean, the pressure is about 1,000 times greater than standard atmospheric pressure at sea level. This is equivalent to the weight of 50 jumbo jets stacked on top of a person."},
	{Title: "Hagia Sophia Engineering", Category: "Architecture", Source: "Architectural History",
		Text: "The Hagia Sophia in Istanbul, completed in 537 AD, features a massive dome that appears to float above the building. Its innovative design used pendentives to transfer the dome's weight to the ground, revolutionizing architecture."},
	{Title: "Chocolate's Ancient Origins", Category: "Food", Source: "Culinary History",
		Text: "The Olmec civilization in Mexico was the first to cultivate cacao around 1500 BC. They used it to create a bitter, frothy beverage consumed during religious ceremonies. Sugar wasn't added until the Spanish brought it to Europe."},
	{Title: "Jupiter's Great Red Spot", Category: "Science", Source: "NASA",
		Text: "Jupiter's Great Red Spot is a giant storm that has been raging for at least 400 years. The storm is so large that three Earths could fit inside it, and its winds reach speeds of up to 400 miles per hour."},
	{Title: "Terracotta Army", Category: "History", Source: "Archaeology",
		Text: "The Terracotta Army, discovered in 1974, consists of over 8,000 life-sized clay soldiers buried with China's first emperor, Qin Shi Huang. Each soldier has unique facial features, suggesting they were modeled after real individuals."},
	{Title: "Bioluminescent Organisms", Category: "Nature", Source: "Marine Biology",
		Text: "Over 75% of deep-sea creatures produce their own light through bioluminescence. This ability helps them attract prey, communicate, and camouflage in the dark ocean depths."},
	{Title: "Colosseum Design", Category: "Architecture", Source: "Roman History",
		Text: "The Roman Colosseum could hold between 50,000 to 80,000 spectators and featured an advanced system of 80 entrances, allowing the entire venue to fill in 15 minutes. Underground tunnels housed gladiators and wild animals."},
	{Title: "Coffee Discovery Legend", Category: "Food", Source: "Coffee History",
		Text: "According to legend, coffee was discovered by an Ethiopian goat herder named Kaldi around 850 AD. He noticed his goats became energetic after eating berries from a certain tree, leading to the discovery of coffee's stimulant properties."},
	{Title: "Quantum Entanglement", Category: "Science", Source: "Quantum Physics",
		Text: "Quantum entanglement is a phenomenon where two particles become connected, and measuring one instantly affects the other, regardless of distance. Einstein called this 'spooky action at a distance.'"},
	{Title: "Machu Picchu Mystery", Category: "History", Source: "Archaeology",
		Text: "Machu Picchu, built by the Inca Empire in the 15th century, was likely an estate for the emperor Pachacuti. Its purpose remains debated, with theories suggesting it served as a religious site, astronomical observatory, or royal retreat."},
	{Title: "Axolotl Regeneration", Category: "Nature", Source: "Biology Research",
		Text: "The axolotl, a Mexican salamander, can regenerate almost any part of its body, including its brain, heart, and spinal cord. Scientists study this ability to understand potential applications in human medicine."},
	{Title: "Leaning Tower of Pisa", Category: "Architecture", Source: "Engineering History",
		Text: "The Leaning Tower of Pisa took 199 years to build and began leaning during construction due to soft ground on one side. It leans at about 4 degrees and was stabilized in the 1990s to prevent collapse."},
	{Title: "Honey's Eternal Shelf Life", Category: "Food", Source: "Food Science",
		Text: "Honey never spoils due to its low moisture content and acidic pH. Archaeologists have found 3,000-year-old honey in Egyptian tombs that was still perfectly edible."},
	{Title: "Neutron Star Density", Category: "Science", Source: "Astrophysics",
		Text: "A teaspoon of neutron star material would weigh about 6 billion tons on Earth. These collapsed stars are so dense that they pack more mass than the Sun into a sphere only 12 miles across."},
	{Title: "Angkor Wat Scale", Category: "Architecture", Source: "Historical Records",
		Text: "Angkor Wat in Cambodia is the largest religious monument in the world, covering 402 acres. It was originally built as a Hindu temple in the 12th century before being converted to Buddhism."},
	{Title: "Electric Eel Power", Category: "Nature", Source: "Wildlife Research",
		Text: "Electric eels can generate up to 860 volts of electricity, enough to stun a horse. They use this ability to hunt prey and defend themselves in the murky waters of the Amazon."},
	{Title: "Spices and Exploration", Category: "History", Source: "Trade History",
		Text: "The search for spices like pepper, cinnamon, and nutmeg drove European exploration in the 15th century. At one time, nutmeg was worth more than its weight in gold in Europe."},
	{Title: "Saffron's Labor-Intensive Harvest", Category: "Food", Source: "Agricultural Science",
		Text: "Saffron is the most expensive spice in the world, requiring 75,000 saffron crocus flowers to produce one pound of saffron. Each flower produces only three threads of saffron, all harvested by hand."},
	{Title: "Black Hole Time Dilation", Category: "Science", Source: "General Relativity",
		Text: "Near a black hole, time passes more slowly due to extreme gravity. If you watched someone fall into a black hole, they would appear to freeze at the event horizon, never quite crossing it from your perspective."},
	{Title: "Petra's Treasury", Category: "Architecture", Source: "Archaeology",
		Text: "Petra's famous Treasury in Jordan was carved directly into a sandstone cliff face around the 1st century AD. Despite its name, it was likely a temple or royal tomb, not a treasury."},
	{Title: "Tardigrade Resilience", Category: "Nature", Source: "Microbiology",
		Text: "Tardigrades, microscopic water bears, can survive extreme conditions including the vacuum of space, temperatures near absolute zero, and radiation levels that would kill most other life forms."},
	{Title: "Silk Road Network", Category: "History", Source: "Trade History",
		Text: "The Silk Road was not a single road but a network of trade routes spanning 4,000 miles connecting East Asia to Europe. Goods, ideas, and diseases all traveled along these routes for centuries."},
	{Title: "DNA Data Storage", Category: "Technology", Source: "Data Science",
		Text: "All the digital data in the world could theoretically fit in a teaspoon of DNA. DNA can store 215 petabytes per gram and remain readable for thousands of years if kept cool and dry."},
	{Title: "First Computer Programmer", Category: "Technology", Source: "Computer History",
		Text: "Ada Lovelace, daughter of poet Lord Byron, wrote the first algorithm intended for a machine in the 1840s. She is considered the first computer programmer for her work on Charles Babbage's Analytical Engine."},
	{Title: "Pyramid Construction Workers", Category: "History", Source: "Egyptology",
		Text: "The Great Pyramids were not built by slaves but by skilled workers who were paid and fed well. Archaeological evidence shows they had access to medical care and were buried with honor near the pyramids."},
}
